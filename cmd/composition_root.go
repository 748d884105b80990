package cmd

import (
	"log/slog"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/partrepo"
	"marketplace/internal/adapters/out/postgres/projectrepo"
	"marketplace/internal/adapters/out/postgres/quotationrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use cases for the process lifetime.
type CompositionRoot struct {
	config    Config
	gormDB    *gorm.DB
	txFactory *postgres.GormTransactionFactory
	logger    *slog.Logger
	clock     commands.Clock

	projects   *projectrepo.GormProjectRepository
	quotations *quotationrepo.GormQuotationRepository
	parts      *partrepo.GormPartRepository
	orders     *orderrepo.GormOrderRepository
	planner    services.OrderPlanner
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		txFactory:  postgres.NewGormTransactionFactory(gormDB, config.TxMaxItems, logger),
		logger:     logger,
		clock:      time.Now,
		projects:   projectrepo.NewGormProjectRepository(gormDB, nil),
		quotations: quotationrepo.NewGormQuotationRepository(gormDB, nil),
		parts:      partrepo.NewGormPartRepository(gormDB, nil),
		orders:     orderrepo.NewGormOrderRepository(gormDB, nil),
		planner:    services.NewOrderPlanner(),
	}
}

func (c *CompositionRoot) CreateCreateProjectCommandHandler() commands.CreateProjectCommandHandler {
	return commands.NewCreateProjectCommandHandler(c.txFactory, c.clock)
}

func (c *CompositionRoot) CreateCreateQuotationCommandHandler() commands.CreateQuotationCommandHandler {
	return commands.NewCreateQuotationCommandHandler(c.txFactory, c.projects, c.clock)
}

func (c *CompositionRoot) CreateCreatePartsAndQuotesCommandHandler() commands.CreatePartsAndQuotesCommandHandler {
	return commands.NewCreatePartsAndQuotesCommandHandler(c.txFactory, c.quotations, c.clock)
}

func (c *CompositionRoot) CreateUpdatePartCommandHandler() commands.UpdatePartCommandHandler {
	return commands.NewUpdatePartCommandHandler(c.txFactory, c.quotations, c.parts, c.clock)
}

func (c *CompositionRoot) CreateSelectPartQuoteCommandHandler() commands.SelectPartQuoteCommandHandler {
	return commands.NewSelectPartQuoteCommandHandler(c.txFactory, c.quotations, c.parts, c.clock)
}

func (c *CompositionRoot) CreateCancelQuotationCommandHandler() commands.CancelQuotationCommandHandler {
	return commands.NewCancelQuotationCommandHandler(c.txFactory, c.quotations, c.clock)
}

func (c *CompositionRoot) CreateConfirmQuotationPaymentCommandHandler() commands.ConfirmQuotationPaymentCommandHandler {
	return commands.NewConfirmQuotationPaymentCommandHandler(
		c.txFactory, c.quotations, c.parts, c.orders, c.planner, c.clock,
	)
}

func (c *CompositionRoot) CreateUpdateOrderPayoutCommandHandler() commands.UpdateOrderPayoutCommandHandler {
	return commands.NewUpdateOrderPayoutCommandHandler(c.txFactory, c.orders, c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.txFactory, c.orders, c.clock)
}

func (c *CompositionRoot) CreateExpireQuotationsCommandHandler() commands.ExpireQuotationsCommandHandler {
	return commands.NewExpireQuotationsCommandHandler(
		c.quotations, c.parts, c.CreateCancelQuotationCommandHandler(), c.clock,
	)
}

func (c *CompositionRoot) CreateGetQuotationQueryHandler() queries.GetQuotationQueryHandler {
	return queries.NewGetQuotationQueryHandler(c.quotations, c.parts, c.planner, c.clock)
}

func (c *CompositionRoot) CreateGetOrdersForQuotationQueryHandler() queries.GetOrdersForQuotationQueryHandler {
	return queries.NewGetOrdersForQuotationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProjectsForClientQueryHandler() queries.GetProjectsForClientQueryHandler {
	return queries.NewGetProjectsForClientQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetQuotationsForProjectQueryHandler() queries.GetQuotationsForProjectQueryHandler {
	return queries.NewGetQuotationsForProjectQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetQuotationsByStatusQueryHandler() queries.GetQuotationsByStatusQueryHandler {
	return queries.NewGetQuotationsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	return httpin.NewServer(httpin.Handlers{
		CreateProject:           c.CreateCreateProjectCommandHandler(),
		CreateQuotation:         c.CreateCreateQuotationCommandHandler(),
		CreatePartsAndQuotes:    c.CreateCreatePartsAndQuotesCommandHandler(),
		UpdatePart:              c.CreateUpdatePartCommandHandler(),
		SelectPartQuote:         c.CreateSelectPartQuoteCommandHandler(),
		CancelQuotation:         c.CreateCancelQuotationCommandHandler(),
		ConfirmQuotationPayment: c.CreateConfirmQuotationPaymentCommandHandler(),
		UpdateOrderPayout:       c.CreateUpdateOrderPayoutCommandHandler(),
		AdvanceOrderStatus:      c.CreateAdvanceOrderStatusCommandHandler(),
		GetQuotation:            c.CreateGetQuotationQueryHandler(),
		GetOrdersForQuotation:   c.CreateGetOrdersForQuotationQueryHandler(),
		GetOrdersByStatus:       c.CreateGetOrdersByStatusQueryHandler(),
		GetProjectsForClient:    c.CreateGetProjectsForClientQueryHandler(),
		GetQuotationsForProject: c.CreateGetQuotationsForProjectQueryHandler(),
		GetQuotationsByStatus:   c.CreateGetQuotationsByStatusQueryHandler(),
	}, c.clock, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expirer := c.CreateExpireQuotationsCommandHandler()
	return jobs.NewJobManager(&expirer, c.config.ExpireSchedule, c.logger)
}
