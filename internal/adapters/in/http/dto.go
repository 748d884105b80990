package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/project"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const deadlineLayout = "2006-01-02"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type NewProject struct {
	CustomerID openapi_types.UUID `json:"customer_id"`
	Name       string             `json:"name"`
}

type Project struct {
	ID         openapi_types.UUID `json:"id"`
	CustomerID openapi_types.UUID `json:"customer_id"`
	Name       string             `json:"name"`
	IsLocked   bool               `json:"is_locked"`
}

type ProjectPage struct {
	Projects []Project          `json:"projects"`
	Next     *openapi_types.UUID `json:"next,omitempty"`
}

type File struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type PriceOption struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	LeadTimeDays int    `json:"lead_time_days"`
}

type NewPart struct {
	Name         string        `json:"name"`
	Key          string        `json:"key"`
	PriceOptions []PriceOption `json:"price_options"`
}

type NewParts struct {
	Files []NewPart `json:"files"`
}

type PartPatch struct {
	File File `json:"file"`
}

type Selection struct {
	PartQuoteID openapi_types.UUID `json:"part_quote_id"`
}

type SelectionResult struct {
	Part              Part `json:"part"`
	SelectionComplete bool `json:"selection_complete"`
}

type PartQuote struct {
	ID           openapi_types.UUID `json:"id"`
	Price        Money              `json:"price"`
	LeadTimeDays int                `json:"lead_time_days"`
	ValidUntil   time.Time          `json:"valid_until"`
	Expired      bool               `json:"expired"`
}

type Part struct {
	ID                  openapi_types.UUID  `json:"id"`
	File                File                `json:"file"`
	SelectedPartQuoteID *openapi_types.UUID `json:"selected_part_quote_id,omitempty"`
	Quotes              []PartQuote         `json:"quotes"`
}

type Quotation struct {
	ID                openapi_types.UUID `json:"id"`
	ProjectID         openapi_types.UUID `json:"project_id"`
	Status            string             `json:"status"`
	Parts             []Part             `json:"parts"`
	SelectionComplete bool               `json:"selection_complete"`
	Subtotal          *Money             `json:"subtotal,omitempty"`
}

type QuotationSummary struct {
	ID        openapi_types.UUID `json:"id"`
	ProjectID openapi_types.UUID `json:"project_id"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type Order struct {
	ID          openapi_types.UUID `json:"id"`
	QuotationID openapi_types.UUID `json:"quotation_id"`
	PartID      openapi_types.UUID `json:"part_id"`
	PartQuoteID openapi_types.UUID `json:"part_quote_id"`
	Payment     Money              `json:"payment"`
	Payout      *Money             `json:"payout,omitempty"`
	Deadline    string             `json:"deadline"`
	Status      string             `json:"status"`
}

func toMoney(m kernel.Money) Money {
	amount := m.Amount()
	if amount.Exponent() >= -2 {
		return Money{Amount: amount.StringFixed(2), Currency: m.Currency()}
	}
	return Money{Amount: amount.String(), Currency: m.Currency()}
}

func toMoneyPtr(m *kernel.Money) *Money {
	if m == nil {
		return nil
	}
	res := toMoney(*m)
	return &res
}

func (m Money) toDomain() (kernel.Money, error) {
	return kernel.ParseMoney(m.Amount, m.Currency)
}

func toUUIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	res := id.Bytes()
	return &res
}

func toProject(p *project.Project) Project {
	return Project{
		ID:         p.ID().Bytes(),
		CustomerID: p.CustomerID().Bytes(),
		Name:       p.Name(),
		IsLocked:   p.IsLocked(),
	}
}

func toProjectPage(page queries.ProjectPage) ProjectPage {
	projects := make([]Project, 0, len(page.Projects))
	for _, v := range page.Projects {
		projects = append(projects, Project{
			ID:         v.ID.Bytes(),
			CustomerID: v.CustomerID.Bytes(),
			Name:       v.Name,
			IsLocked:   v.IsLocked,
		})
	}
	return ProjectPage{Projects: projects, Next: toUUIDPtr(page.Next)}
}

func toQuotationSummaries(views []queries.QuotationSummaryView) []QuotationSummary {
	res := make([]QuotationSummary, 0, len(views))
	for _, v := range views {
		res = append(res, QuotationSummary{
			ID:        v.ID.Bytes(),
			ProjectID: v.ProjectID.Bytes(),
			Status:    v.Status.String(),
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		})
	}
	return res
}

func toPart(p *part.Part, now time.Time) Part {
	quotes := make([]PartQuote, 0, len(p.Quotes()))
	for _, q := range p.Quotes() {
		quotes = append(quotes, PartQuote{
			ID:           q.ID().Bytes(),
			Price:        toMoney(q.Price()),
			LeadTimeDays: q.LeadTimeDays(),
			ValidUntil:   q.ValidUntil(),
			Expired:      q.IsExpired(now),
		})
	}

	return Part{
		ID:                  p.ID().Bytes(),
		File:                File{Name: p.File().Name(), Key: p.File().Key()},
		SelectedPartQuoteID: toUUIDPtr(p.SelectedQuoteID()),
		Quotes:              quotes,
	}
}

func toParts(parts []*part.Part, now time.Time) []Part {
	res := make([]Part, 0, len(parts))
	for _, p := range parts {
		res = append(res, toPart(p, now))
	}
	return res
}

func toQuotation(v queries.QuotationView) Quotation {
	parts := make([]Part, 0, len(v.Parts))
	for _, p := range v.Parts {
		quotes := make([]PartQuote, 0, len(p.Quotes))
		for _, q := range p.Quotes {
			quotes = append(quotes, PartQuote{
				ID:           q.ID.Bytes(),
				Price:        toMoney(q.Price),
				LeadTimeDays: q.LeadTimeDays,
				ValidUntil:   q.ValidUntil,
				Expired:      q.Expired,
			})
		}
		parts = append(parts, Part{
			ID:                  p.ID.Bytes(),
			File:                File{Name: p.FileName, Key: p.FileKey},
			SelectedPartQuoteID: toUUIDPtr(p.SelectedQuoteID),
			Quotes:              quotes,
		})
	}

	return Quotation{
		ID:                v.ID.Bytes(),
		ProjectID:         v.ProjectID.Bytes(),
		Status:            v.Status.String(),
		Parts:             parts,
		SelectionComplete: v.SelectionComplete,
		Subtotal:          toMoneyPtr(v.Subtotal),
	}
}

func toOrder(o *order.Order) Order {
	return Order{
		ID:          o.ID().Bytes(),
		QuotationID: o.QuotationID().Bytes(),
		PartID:      o.PartID().Bytes(),
		PartQuoteID: o.PartQuoteID().Bytes(),
		Payment:     toMoney(o.Payment()),
		Payout:      toMoneyPtr(o.Payout()),
		Deadline:    o.Deadline().Format(deadlineLayout),
		Status:      o.Status().String(),
	}
}

func toOrders(orders []*order.Order) []Order {
	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrder(o))
	}
	return res
}

func toOrderViews(views []queries.OrderView) []Order {
	res := make([]Order, 0, len(views))
	for _, v := range views {
		res = append(res, Order{
			ID:          v.ID.Bytes(),
			QuotationID: v.QuotationID.Bytes(),
			PartID:      v.PartID.Bytes(),
			PartQuoteID: v.PartQuoteID.Bytes(),
			Payment:     toMoney(v.Payment),
			Payout:      toMoneyPtr(v.Payout),
			Deadline:    v.Deadline.Format(deadlineLayout),
			Status:      v.Status.String(),
		})
	}
	return res
}
