// Package http is the inbound HTTP adapter: REST endpoints for checkout,
// order operations, table tracking and service requests, plus an SSE stream
// fed by the in-process event bus.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"orderhub/internal/adapters/out/bus"
	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP requests to application use cases.
type Server struct {
	checkoutHandler            commands.CheckoutOrderCommandHandler
	advanceHandler             commands.AdvanceOrderCommandHandler
	performActionHandler       commands.PerformOrderActionCommandHandler
	createRequestHandler       commands.CreateServiceRequestCommandHandler
	resolveRequestHandler      commands.ResolveServiceRequestCommandHandler
	purgeHandler               commands.PurgeOrdersCommandHandler
	listOrdersHandler          queries.ListOrdersQueryHandler
	getTableOrdersHandler      queries.GetTableOrdersQueryHandler
	listPendingRequestsHandler queries.ListPendingServiceRequestsQueryHandler
	catalog                    ports.MenuCatalog
	hub                        *bus.Hub
	jwtSecret                  []byte
}

// NewServer creates the HTTP server.
func NewServer(
	checkoutHandler commands.CheckoutOrderCommandHandler,
	advanceHandler commands.AdvanceOrderCommandHandler,
	performActionHandler commands.PerformOrderActionCommandHandler,
	createRequestHandler commands.CreateServiceRequestCommandHandler,
	resolveRequestHandler commands.ResolveServiceRequestCommandHandler,
	purgeHandler commands.PurgeOrdersCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getTableOrdersHandler queries.GetTableOrdersQueryHandler,
	listPendingRequestsHandler queries.ListPendingServiceRequestsQueryHandler,
	catalog ports.MenuCatalog,
	hub *bus.Hub,
	jwtSecret []byte,
) *Server {
	return &Server{
		checkoutHandler:            checkoutHandler,
		advanceHandler:             advanceHandler,
		performActionHandler:       performActionHandler,
		createRequestHandler:       createRequestHandler,
		resolveRequestHandler:      resolveRequestHandler,
		purgeHandler:               purgeHandler,
		listOrdersHandler:          listOrdersHandler,
		getTableOrdersHandler:      getTableOrdersHandler,
		listPendingRequestsHandler: listPendingRequestsHandler,
		catalog:                    catalog,
		hub:                        hub,
		jwtSecret:                  jwtSecret,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(authMiddleware(s.jwtSecret))

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CheckoutOrder)
	api.GET("/orders", s.ListOrders, requireStaff)
	api.DELETE("/orders", s.PurgeOrders, requireAdmin)
	api.POST("/orders/:id/advance", s.AdvanceOrder, requireStaff)
	api.POST("/orders/:id/actions", s.PerformOrderAction, requireStaff)

	api.GET("/tables/:number/orders", s.GetTableOrders)

	api.POST("/service-requests", s.CreateServiceRequest)
	api.GET("/service-requests", s.ListPendingServiceRequests, requireStaff)
	api.POST("/service-requests/:id/resolve", s.ResolveServiceRequest, requireStaff)

	api.GET("/events", s.StreamEvents)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// mapError translates domain failures into HTTP status codes: validation
// 400, stale compare-and-swap 409, not found 404, terminal/illegal states
// and pricing rejections 422.
func mapError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrConflict),
		errors.Is(err, servicerequest.ErrAlreadyResolved):
		status = http.StatusConflict
	case errors.Is(err, order.ErrTerminalState),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrNoNextStatus),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrInvalidPrice):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrCartIsEmpty):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return c.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type checkoutLineRequest struct {
	MenuItemID          string   `json:"menu_item_id"`
	Size                string   `json:"size,omitempty"`
	Modifiers           []string `json:"modifiers,omitempty"`
	Quantity            int      `json:"quantity"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

type checkoutRequest struct {
	OrderType     string                `json:"order_type"`
	PaymentMethod string                `json:"payment_method"`
	TableNumber   *int                  `json:"table_number,omitempty"`
	LocationID    *string               `json:"location_id,omitempty"`
	CustomerName  string                `json:"customer_name,omitempty"`
	CustomerPhone string                `json:"customer_phone,omitempty"`
	Lines         []checkoutLineRequest `json:"lines"`
}

type orderResponse struct {
	ID               string    `json:"id"`
	Number           int64     `json:"order_number"`
	Status           string    `json:"status"`
	OrderType        string    `json:"order_type"`
	TableNumber      *int      `json:"table_number,omitempty"`
	Subtotal         string    `json:"subtotal"`
	Tax              string    `json:"tax"`
	Total            string    `json:"total"`
	VerificationCode string    `json:"verification_code,omitempty"`
	Modified         bool      `json:"modified"`
	CreatedAt        time.Time `json:"created_at"`
}

func orderToResponse(o *order.Order, includeCode bool) orderResponse {
	totals := o.Totals()
	resp := orderResponse{
		ID:          o.ID().String(),
		Number:      o.Number(),
		Status:      o.Status().String(),
		OrderType:   string(o.Type()),
		TableNumber: o.TableNumber(),
		Subtotal:    totals.Subtotal.String(),
		Tax:         totals.Tax.String(),
		Total:       totals.Total.String(),
		Modified:    o.IsModified(),
		CreatedAt:   o.CreatedAt(),
	}
	if includeCode {
		resp.VerificationCode = o.VerificationCode()
	}
	return resp
}

// CheckoutOrder handles POST /api/v1/orders. The cart is re-priced against
// the catalog at commit time; the response carries the verification code the
// customer needs for tracking.
func (s *Server) CheckoutOrder(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	ctx := c.Request().Context()

	var locationID *kernel.UUID
	if req.LocationID != nil {
		id, err := kernel.UUIDFromString(*req.LocationID)
		if err != nil {
			return mapError(c, err)
		}
		locationID = &id
	}

	lines := make([]commands.CheckoutLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, err := s.resolveLine(c, lineReq, locationID)
		if err != nil {
			return mapError(c, err)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCheckoutOrderCommand(
		kernel.NewUUID(),
		order.OrderType(req.OrderType),
		order.PaymentMethod(req.PaymentMethod),
		req.TableNumber,
		locationID,
		order.Customer{Name: req.CustomerName, Phone: req.CustomerPhone},
		lines,
	)
	if err != nil {
		return mapError(c, err)
	}

	created, err := s.checkoutHandler.Handle(ctx, cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, orderToResponse(created, true))
}

// resolveLine re-reads the catalog for one cart line. Unknown items, sizes
// and modifier names are rejected here, before any pricing happens.
func (s *Server) resolveLine(c echo.Context, req checkoutLineRequest, locationID *kernel.UUID) (commands.CheckoutLine, error) {
	ctx := c.Request().Context()

	itemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return commands.CheckoutLine{}, err
	}

	item, err := s.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return commands.CheckoutLine{}, err
	}

	var override *menu.LocationOverride
	if locationID != nil {
		override, err = s.catalog.OverrideFor(ctx, *locationID, itemID)
		if err != nil {
			return commands.CheckoutLine{}, err
		}
	}

	var modifiers []menu.ModifierOption
	if len(req.Modifiers) > 0 {
		offered, modErr := s.catalog.ItemModifiers(ctx, itemID)
		if modErr != nil {
			return commands.CheckoutLine{}, modErr
		}
		byName := make(map[string]menu.ModifierOption, len(offered))
		for _, option := range offered {
			byName[option.Name] = option
		}
		for _, name := range req.Modifiers {
			option, ok := byName[name]
			if !ok {
				return commands.CheckoutLine{}, errs.NewValueIsInvalidErrorWithCause(
					"modifier", fmt.Errorf("%q is not offered for %s", name, item.Name()))
			}
			modifiers = append(modifiers, option)
		}
	}

	return commands.CheckoutLine{
		Item:                item,
		Override:            override,
		SizeName:            req.Size,
		Modifiers:           modifiers,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	}, nil
}

// ListOrders handles GET /api/v1/orders for the operations dashboard.
func (s *Server) ListOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	tableNumber := 0
	if raw := c.QueryParam("table"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid table filter"})
		}
		tableNumber = parsed
	}

	var locationID *kernel.UUID
	if raw := c.QueryParam("location_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return mapError(c, err)
		}
		locationID = &id
	}

	query, err := queries.NewListOrdersQuery(
		c.QueryParam("status"),
		c.QueryParam("type"),
		tableNumber,
		locationID,
		page,
		pageSize,
	)
	if err != nil {
		return mapError(c, err)
	}

	result, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return mapError(c, err)
	}

	type summaryResponse struct {
		ID           string    `json:"id"`
		Number       int64     `json:"order_number"`
		Status       string    `json:"status"`
		OrderType    string    `json:"order_type"`
		TableNumber  *int      `json:"table_number,omitempty"`
		CustomerName string    `json:"customer_name,omitempty"`
		Total        string    `json:"total"`
		Modified     bool      `json:"modified"`
		CreatedAt    time.Time `json:"created_at"`
	}

	summaries := make([]summaryResponse, 0, len(result.Orders))
	for _, o := range result.Orders {
		summaries = append(summaries, summaryResponse{
			ID:           o.ID.String(),
			Number:       o.Number,
			Status:       o.Status.String(),
			OrderType:    string(o.OrderType),
			TableNumber:  o.TableNumber,
			CustomerName: o.CustomerName,
			Total:        o.Total.String(),
			Modified:     o.Modified,
			CreatedAt:    o.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"orders":      summaries,
		"total_count": result.TotalCount,
		"page":        result.Page,
		"page_size":   result.PageSize,
	})
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance: one happy-path step
// forward, used by the kitchen display bump button.
func (s *Server) AdvanceOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, actorID(c))
	if err != nil {
		return mapError(c, err)
	}

	advanced, err := s.advanceHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, orderToResponse(advanced, false))
}

type orderActionRequest struct {
	Target        string `json:"target_status"`
	Note          string `json:"note,omitempty"`
	AdminOverride bool   `json:"admin_override,omitempty"`
}

// PerformOrderAction handles POST /api/v1/orders/:id/actions: dashboard
// actions such as cancellation, refund marking, or an admin override jump.
func (s *Server) PerformOrderAction(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	var req orderActionRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	if req.AdminOverride {
		actor, ok := actorFrom(c)
		if !ok || !actor.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin credentials required for override")
		}
	}

	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return mapError(c, err)
	}

	cmd, err := commands.NewPerformOrderActionCommand(orderID, target, req.Note, actorID(c), req.AdminOverride)
	if err != nil {
		return mapError(c, err)
	}

	updated, err := s.performActionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, orderToResponse(updated, false))
}

// PurgeOrders handles DELETE /api/v1/orders?date=2026-01-31: the privileged
// end-of-day bulk deletion.
func (s *Server) PurgeOrders(c echo.Context) error {
	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"})
	}

	cmd, err := commands.NewPurgeOrdersCommand(day, actorID(c))
	if err != nil {
		return mapError(c, err)
	}

	purged, err := s.purgeHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int{"purged": purged})
}

// GetTableOrders handles GET /api/v1/tables/:number/orders?code=… for
// customer tracking. A wrong code gets an empty list, not an error.
func (s *Server) GetTableOrders(c echo.Context) error {
	tableNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid table number"})
	}

	query, err := queries.NewGetTableOrdersQuery(tableNumber, c.QueryParam("code"))
	if err != nil {
		return mapError(c, err)
	}

	result, err := s.getTableOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return mapError(c, err)
	}

	type itemResponse struct {
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
		LineTotal string `json:"line_total"`
	}
	type trackedOrderResponse struct {
		ID        string         `json:"id"`
		Number    int64          `json:"order_number"`
		Status    string         `json:"status"`
		Total     string         `json:"total"`
		CreatedAt time.Time      `json:"created_at"`
		Items     []itemResponse `json:"items"`
	}

	tracked := make([]trackedOrderResponse, 0, len(result))
	for _, o := range result {
		items := make([]itemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, itemResponse{
				Name:      item.Name,
				Quantity:  item.Quantity,
				LineTotal: item.LineTotal.String(),
			})
		}
		tracked = append(tracked, trackedOrderResponse{
			ID:        o.ID.String(),
			Number:    o.Number,
			Status:    o.Status.String(),
			Total:     o.Total.String(),
			CreatedAt: o.CreatedAt,
			Items:     items,
		})
	}

	return c.JSON(http.StatusOK, tracked)
}

type serviceRequestRequest struct {
	TableNumber int    `json:"table_number"`
	Type        string `json:"type"`
}

type serviceRequestResponse struct {
	ID          string     `json:"id"`
	TableNumber int        `json:"table_number"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func requestToResponse(r *servicerequest.ServiceRequest) serviceRequestResponse {
	return serviceRequestResponse{
		ID:          r.ID().String(),
		TableNumber: r.TableNumber(),
		Type:        string(r.Type()),
		Status:      string(r.Status()),
		CreatedAt:   r.CreatedAt(),
		ResolvedAt:  r.ResolvedAt(),
	}
}

// CreateServiceRequest handles POST /api/v1/service-requests. Repeated
// presses of the call button while a matching request is still pending come
// back with the already-pending request instead of creating another one.
func (s *Server) CreateServiceRequest(c echo.Context) error {
	var req serviceRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	cmd, err := commands.NewCreateServiceRequestCommand(req.TableNumber, servicerequest.Type(req.Type))
	if err != nil {
		return mapError(c, err)
	}

	created, err := s.createRequestHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, requestToResponse(created))
}

// ListPendingServiceRequests handles GET /api/v1/service-requests.
func (s *Server) ListPendingServiceRequests(c echo.Context) error {
	query := queries.NewListPendingServiceRequestsQuery()

	result, err := s.listPendingRequestsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return mapError(c, err)
	}

	pending := make([]serviceRequestResponse, 0, len(result))
	for _, r := range result {
		pending = append(pending, serviceRequestResponse{
			ID:          r.ID.String(),
			TableNumber: r.TableNumber,
			Type:        string(r.Type),
			Status:      string(servicerequest.Pending),
			CreatedAt:   r.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, pending)
}

// ResolveServiceRequest handles POST /api/v1/service-requests/:id/resolve.
func (s *Server) ResolveServiceRequest(c echo.Context) error {
	requestID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	cmd, err := commands.NewResolveServiceRequestCommand(requestID, actorID(c))
	if err != nil {
		return mapError(c, err)
	}

	resolved, err := s.resolveRequestHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, requestToResponse(resolved))
}

// StreamEvents handles GET /api/v1/events as Server-Sent Events.
// Scope selection: ?table=7&code=… for a single table (the code is
// mandatory and checked at the publish boundary), ?location_id=… for one
// location (staff), default global (staff).
func (s *Server) StreamEvents(c echo.Context) error {
	topic, err := s.eventTopic(c)
	if err != nil {
		return err
	}

	sub := s.hub.Subscribe(topic)
	defer s.hub.Unsubscribe(sub)

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			body, marshalErr := json.Marshal(event)
			if marshalErr != nil {
				continue
			}
			if _, writeErr := fmt.Fprintf(resp, "data: %s\n\n", body); writeErr != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

func (s *Server) eventTopic(c echo.Context) (bus.Topic, error) {
	if raw := c.QueryParam("table"); raw != "" {
		tableNumber, err := strconv.Atoi(raw)
		if err != nil {
			return bus.Topic{}, echo.NewHTTPError(http.StatusBadRequest, "invalid table number")
		}
		code := c.QueryParam("code")
		if code == "" {
			return bus.Topic{}, echo.NewHTTPError(http.StatusBadRequest, "table streams require a verification code")
		}
		return bus.TableTopic(tableNumber, code), nil
	}

	// non-table streams expose other customers' orders and are staff-only
	actor, ok := actorFrom(c)
	if !ok || (actor.Role != RoleStaff && actor.Role != RoleAdmin) {
		return bus.Topic{}, echo.NewHTTPError(http.StatusUnauthorized, "staff credentials required")
	}

	if raw := c.QueryParam("location_id"); raw != "" {
		locationID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return bus.Topic{}, echo.NewHTTPError(http.StatusBadRequest, "invalid location id")
		}
		return bus.LocationTopic(locationID), nil
	}

	return bus.GlobalTopic(), nil
}
