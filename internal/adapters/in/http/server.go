package http

import (
	"context"
	"net/http"

	"visadesk/internal/core/application/usecases/commands"
	"visadesk/internal/core/application/usecases/queries"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// UserHeader carries the id of the acting user.
const UserHeader = "X-User-ID"

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	OrderUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}

	OrderArchiver interface {
		Handle(ctx context.Context, cmd commands.ArchiveOrderCommand) error
	}

	OrderServicesUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderServicesCommand) error
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}

	OrderServicesReader interface {
		Handle(ctx context.Context, query queries.GetOrderServicesQuery) (queries.GetOrderServicesQueryResponse, error)
	}

	AuditReader interface {
		Handle(ctx context.Context, query queries.ListAuditEntriesQuery) (queries.ListAuditEntriesQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder         OrderCreator
	UpdateOrder         OrderUpdater
	ArchiveOrder        OrderArchiver
	UpdateOrderServices OrderServicesUpdater

	GetOrder         OrderReader
	ListOrders       OrderLister
	GetOrderServices OrderServicesReader
	ListAuditEntries AuditReader
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With(zap.String("component", "http")),
	}
}

// NewEcho builds the echo instance with middleware, validation, error
// mapping and every route of the server.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	s.Register(e)
	return e
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.POST("/orders/:id/archive", s.ArchiveOrder)
	api.GET("/orders/:id/services", s.GetOrderServices)
	api.PUT("/orders/:id/services", s.UpdateOrderServices)
	api.GET("/users/:id/audit", s.ListAuditEntries)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actorID, err := actingUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actorID, req.toData())
	if err != nil {
		return err
	}

	created, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusCreated, created.ID(), false)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var (
		page, size      int
		status          string
		includeArchived bool
	)
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("size", &size).
		String("status", &status).
		Bool("include_archived", &includeArchived).
		BindError(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("query", err)
	}

	filter := queries.OrderFilter{IncludeArchived: includeArchived}
	if status != "" {
		value := order.Status(status)
		filter.Status = &value
	}

	var err error
	for param, target := range map[string]**kernel.ID{
		"country_id":       &filter.CountryID,
		"client_id":        &filter.ClientID,
		"created_by_id":    &filter.CreatedByID,
		"urgency_id":       &filter.UrgencyID,
		"visa_duration_id": &filter.VisaDurationID,
		"visa_type_id":     &filter.VisaTypeID,
	} {
		if *target, err = optionalQueryID(c, param); err != nil {
			return err
		}
	}

	query, err := queries.NewListOrdersQuery(filter, page, size)
	if err != nil {
		return err
	}

	resp, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderListResponse(resp))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var populateClient bool
	if err := echo.QueryParamsBinder(c).Bool("populate_client", &populateClient).BindError(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("populate_client", err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, populateClient)
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	actorID, err := actingUser(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actorID, req.toData())
	if err != nil {
		return err
	}

	if _, err := s.h.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, false)
}

// ArchiveOrder handles POST /api/v1/orders/:id/archive.
func (s *Server) ArchiveOrder(c echo.Context) error {
	actorID, err := actingUser(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewArchiveOrderCommand(orderID, actorID)
	if err != nil {
		return err
	}

	if err := s.h.ArchiveOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetOrderServices handles GET /api/v1/orders/:id/services.
func (s *Server) GetOrderServices(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondWithOrderServices(c, orderID)
}

// UpdateOrderServices handles PUT /api/v1/orders/:id/services and answers
// with the resulting attached and available services.
func (s *Server) UpdateOrderServices(c echo.Context) error {
	if _, err := actingUser(c); err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateOrderServicesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderServicesCommand(orderID, req.TariffServiceIDs)
	if err != nil {
		return err
	}

	if err := s.h.UpdateOrderServices.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrderServices(c, orderID)
}

// ListAuditEntries handles GET /api/v1/users/:id/audit.
func (s *Server) ListAuditEntries(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAuditEntriesQuery(userID)
	if err != nil {
		return err
	}

	resp, err := s.h.ListAuditEntries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAuditEntriesResponse(resp))
}

func (s *Server) respondWithOrder(c echo.Context, status int, orderID kernel.ID, populateClient bool) error {
	query, err := queries.NewGetOrderQuery(orderID, populateClient)
	if err != nil {
		return err
	}

	resp, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, newOrderResponse(resp))
}

func (s *Server) respondWithOrderServices(c echo.Context, orderID kernel.ID) error {
	query, err := queries.NewGetOrderServicesQuery(orderID)
	if err != nil {
		return err
	}

	resp, err := s.h.GetOrderServices.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderServicesResponse(resp))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(req)
}

func actingUser(c echo.Context) (kernel.ID, error) {
	raw := c.Request().Header.Get(UserHeader)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(UserHeader)
	}
	id, err := kernel.ParseID(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(UserHeader, err)
	}
	return id, nil
}

func pathID(c echo.Context) (kernel.ID, error) {
	id, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func optionalQueryID(c echo.Context, param string) (*kernel.ID, error) {
	raw := c.QueryParam(param)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent filter
	}
	id, err := kernel.ParseID(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &id, nil
}
