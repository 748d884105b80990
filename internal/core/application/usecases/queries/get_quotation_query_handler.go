package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// GetQuotationQueryHandler assembles a QuotationView from the read
// repositories. The quotation and its parts are loaded concurrently.
type GetQuotationQueryHandler struct {
	quotations ports.QuotationRepository
	parts      ports.PartRepository
	planner    services.OrderPlanner
	clock      func() time.Time
}

// NewGetQuotationQueryHandler creates the handler. A nil clock uses time.Now.
func NewGetQuotationQueryHandler(
	quotations ports.QuotationRepository,
	parts ports.PartRepository,
	planner services.OrderPlanner,
	clock func() time.Time,
) GetQuotationQueryHandler {
	if clock == nil {
		clock = time.Now
	}
	return GetQuotationQueryHandler{
		quotations: quotations,
		parts:      parts,
		planner:    planner,
		clock:      clock,
	}
}

// Handle returns the quotation with its parts and, once every part has a
// selection, the subtotal.
func (h GetQuotationQueryHandler) Handle(ctx context.Context, query GetQuotationQuery) (QuotationView, error) {
	if err := query.Validate(); err != nil {
		return QuotationView{}, err
	}

	var (
		q     *quotation.Quotation
		parts []*part.Part
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		q, err = h.quotations.Get(gctx, query.QuotationID())
		return err
	})
	g.Go(func() (err error) {
		parts, err = h.parts.ListByQuotation(gctx, query.QuotationID())
		return err
	})
	if err := g.Wait(); err != nil {
		return QuotationView{}, err
	}

	now := h.clock().UTC()
	view := QuotationView{
		ID:        q.ID(),
		ProjectID: q.ProjectID(),
		Status:    q.Status(),
		Parts:     make([]PartView, 0, len(parts)),
		CreatedAt: q.CreatedAt(),
		UpdatedAt: q.UpdatedAt(),
	}
	for _, p := range parts {
		view.Parts = append(view.Parts, partView(p, now))
	}

	if subtotal, err := h.planner.Subtotal(parts); err == nil {
		view.SelectionComplete = true
		view.Subtotal = &subtotal
	}

	return view, nil
}

func partView(p *part.Part, now time.Time) PartView {
	v := PartView{
		ID:              p.ID(),
		FileName:        p.File().Name(),
		FileKey:         p.File().Key(),
		SelectedQuoteID: p.SelectedQuoteID(),
		Quotes:          make([]PartQuoteView, 0, len(p.Quotes())),
	}
	for _, pq := range p.Quotes() {
		v.Quotes = append(v.Quotes, PartQuoteView{
			ID:           pq.ID(),
			Price:        pq.Price(),
			LeadTimeDays: pq.LeadTimeDays(),
			ValidUntil:   pq.ValidUntil(),
			Expired:      pq.IsExpired(now),
		})
	}
	return v
}
