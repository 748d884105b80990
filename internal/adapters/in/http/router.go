package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP server: request validation against doc, request
// logging, the API routes, /health and the Swagger UI under /swagger/.
func NewEcho(s *Server, doc *openapi3.T) (*echo.Echo, error) {
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/projects", s.ListProjects)
	api.POST("/projects", s.CreateProject)
	api.GET("/projects/:projectId/quotations", s.ListProjectQuotations)
	api.POST("/projects/:projectId/quotations", s.CreateQuotation)
	api.GET("/quotations", s.ListQuotations)
	api.GET("/quotations/:quotationId", s.GetQuotation)
	api.POST("/quotations/:quotationId/parts", s.CreatePartsAndQuotes)
	api.PATCH("/quotations/:quotationId/parts/:partId", s.UpdatePart)
	api.PUT("/quotations/:quotationId/parts/:partId/selection", s.SelectPartQuote)
	api.POST("/quotations/:quotationId/cancel", s.CancelQuotation)
	api.POST("/quotations/:quotationId/payments", s.ConfirmQuotationPayment)
	api.GET("/quotations/:quotationId/orders", s.GetQuotationOrders)
	api.GET("/orders", s.GetOrders)
	api.PUT("/orders/:orderId/payout", s.UpdateOrderPayout)
	api.POST("/orders/:orderId/advance", s.AdvanceOrderStatus)

	return e, nil
}
