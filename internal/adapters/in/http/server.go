package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const clientIDHeader = "X-Client-ID"

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateProject           commands.CreateProjectCommandHandler
	CreateQuotation         commands.CreateQuotationCommandHandler
	CreatePartsAndQuotes    commands.CreatePartsAndQuotesCommandHandler
	UpdatePart              commands.UpdatePartCommandHandler
	SelectPartQuote         commands.SelectPartQuoteCommandHandler
	CancelQuotation         commands.CancelQuotationCommandHandler
	ConfirmQuotationPayment commands.ConfirmQuotationPaymentCommandHandler
	UpdateOrderPayout       commands.UpdateOrderPayoutCommandHandler
	AdvanceOrderStatus      commands.AdvanceOrderStatusCommandHandler

	GetQuotation            queries.GetQuotationQueryHandler
	GetOrdersForQuotation   queries.GetOrdersForQuotationQueryHandler
	GetOrdersByStatus       queries.GetOrdersByStatusQueryHandler
	GetProjectsForClient    queries.GetProjectsForClientQueryHandler
	GetQuotationsForProject queries.GetQuotationsForProjectQueryHandler
	GetQuotationsByStatus   queries.GetQuotationsByStatusQueryHandler
}

type Server struct {
	handlers Handlers
	clock    commands.Clock
	logger   *slog.Logger
}

func NewServer(handlers Handlers, clock commands.Clock, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}

	return &Server{
		handlers: handlers,
		clock:    clock,
		logger:   logger.With("component", "http"),
	}, nil
}

func (s *Server) now() time.Time {
	return s.clock().UTC()
}

func (s *Server) CreateProject(c echo.Context) error {
	var req NewProject
	if err := c.Bind(&req); err != nil {
		return err
	}
	customerID, err := fromAPIUUID("customer_id", req.CustomerID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateProjectCommand(customerID, req.Name)
	if err != nil {
		return err
	}
	p, err := s.handlers.CreateProject.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProject(p))
}

func (s *Server) CreateQuotation(c echo.Context) error {
	projectID, err := pathUUID(c, "projectId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateQuotationCommand(projectID)
	if err != nil {
		return err
	}
	q, err := s.handlers.CreateQuotation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Quotation{
		ID:        q.ID().Bytes(),
		ProjectID: q.ProjectID().Bytes(),
		Status:    q.Status().String(),
		Parts:     []Part{},
	})
}

func (s *Server) GetQuotation(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}

	view, err := s.quotationView(c, quotationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuotation(view))
}

func (s *Server) quotationView(c echo.Context, quotationID kernel.UUID) (queries.QuotationView, error) {
	query, err := queries.NewGetQuotationQuery(quotationID)
	if err != nil {
		return queries.QuotationView{}, err
	}
	return s.handlers.GetQuotation.Handle(c.Request().Context(), query)
}

func (s *Server) CreatePartsAndQuotes(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}
	clientID, err := headerUUID(c, clientIDHeader)
	if err != nil {
		return err
	}
	var req NewParts
	if err = c.Bind(&req); err != nil {
		return err
	}

	submissions, err := toSubmissions(req)
	if err != nil {
		return err
	}

	// The project is taken from the stored quotation; the handler still
	// checks that both agree.
	view, err := s.quotationView(c, quotationID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreatePartsAndQuotesCommand(clientID, view.ProjectID, quotationID, submissions)
	if err != nil {
		return err
	}
	parts, err := s.handlers.CreatePartsAndQuotes.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toParts(parts, s.now()))
}

func toSubmissions(req NewParts) ([]commands.PartSubmission, error) {
	submissions := make([]commands.PartSubmission, 0, len(req.Files))
	var errList []error

	for _, f := range req.Files {
		file, err := part.NewFile(f.Name, f.Key)
		if err != nil {
			errList = append(errList, err)
			continue
		}

		options := make([]part.PriceOption, 0, len(f.PriceOptions))
		for _, o := range f.PriceOptions {
			price, err := kernel.ParseMoney(o.Amount, o.Currency)
			if err != nil {
				errList = append(errList, err)
				continue
			}
			option, err := part.NewPriceOption(price, o.LeadTimeDays)
			if err != nil {
				errList = append(errList, err)
				continue
			}
			options = append(options, option)
		}

		submissions = append(submissions, commands.PartSubmission{File: file, PriceOptions: options})
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (s *Server) UpdatePart(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}
	partID, err := pathUUID(c, "partId")
	if err != nil {
		return err
	}
	var req PartPatch
	if err = c.Bind(&req); err != nil {
		return err
	}

	file, err := part.NewFile(req.File.Name, req.File.Key)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdatePartCommand(quotationID, partID, file)
	if err != nil {
		return err
	}
	p, err := s.handlers.UpdatePart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPart(p, s.now()))
}

func (s *Server) SelectPartQuote(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}
	partID, err := pathUUID(c, "partId")
	if err != nil {
		return err
	}
	var req Selection
	if err = c.Bind(&req); err != nil {
		return err
	}
	partQuoteID, err := fromAPIUUID("part_quote_id", req.PartQuoteID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSelectPartQuoteCommand(quotationID, partID, partQuoteID)
	if err != nil {
		return err
	}
	res, err := s.handlers.SelectPartQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SelectionResult{
		Part:              toPart(res.Part, s.now()),
		SelectionComplete: res.SelectionComplete,
	})
}

func (s *Server) CancelQuotation(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelQuotationCommand(quotationID)
	if err != nil {
		return err
	}
	if _, err = s.handlers.CancelQuotation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.quotationView(c, quotationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuotation(view))
}

func (s *Server) ConfirmQuotationPayment(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}
	var req Money
	if err = c.Bind(&req); err != nil {
		return err
	}
	amount, err := req.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmQuotationPaymentCommand(quotationID, amount)
	if err != nil {
		return err
	}
	orders, err := s.handlers.ConfirmQuotationPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOrders(orders))
}

func (s *Server) GetQuotationOrders(c echo.Context) error {
	quotationID, err := pathUUID(c, "quotationId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrdersForQuotationQuery(quotationID)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetOrdersForQuotation.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderViews(views))
}

func (s *Server) GetOrders(c echo.Context) error {
	value, err := queryString(c, "status")
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(value)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetOrdersByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderViews(views))
}

// ListProjects pages through the projects of the calling client.
func (s *Server) ListProjects(c echo.Context) error {
	clientID, err := headerUUID(c, clientIDHeader)
	if err != nil {
		return err
	}
	var (
		limit *int
		after *openapi_types.UUID
	)
	if err = errors.Join(queryOptional(c, "limit", &limit), queryOptional(c, "after", &after)); err != nil {
		return err
	}

	var cursor *kernel.UUID
	if after != nil {
		id, err := fromAPIUUID("after", *after)
		if err != nil {
			return err
		}
		cursor = &id
	}
	pageSize := 0
	if limit != nil {
		pageSize = *limit
	}

	query, err := queries.NewGetProjectsForClientQuery(clientID, pageSize, cursor)
	if err != nil {
		return err
	}
	page, err := s.handlers.GetProjectsForClient.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectPage(page))
}

func (s *Server) ListProjectQuotations(c echo.Context) error {
	clientID, err := headerUUID(c, clientIDHeader)
	if err != nil {
		return err
	}
	projectID, err := pathUUID(c, "projectId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetQuotationsForProjectQuery(clientID, projectID)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetQuotationsForProject.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toQuotationSummaries(views))
}

// ListQuotations is the administrative listing of quotations by status.
func (s *Server) ListQuotations(c echo.Context) error {
	value, err := queryString(c, "status")
	if err != nil {
		return err
	}
	status, err := quotation.ParseStatus(value)
	if err != nil {
		return err
	}

	query, err := queries.NewGetQuotationsByStatusQuery(status)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetQuotationsByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toQuotationSummaries(views))
}

func (s *Server) UpdateOrderPayout(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req Money
	if err = c.Bind(&req); err != nil {
		return err
	}
	payout, err := req.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderPayoutCommand(orderID, payout)
	if err != nil {
		return err
	}
	o, err := s.handlers.UpdateOrderPayout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(o))
}

func (s *Server) AdvanceOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID)
	if err != nil {
		return err
	}
	o, err := s.handlers.AdvanceOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(o))
}
