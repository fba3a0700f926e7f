package booking

import (
	"context"
	"net/http"

	"roomslot/infras/otel"
	"roomslot/internal/domains/booking/model/dto"
	"roomslot/internal/domains/booking/service"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	"roomslot/shared/validator"
	"roomslot/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) trace(r *http.Request, op string) (context.Context, otel.Scope) {
	return handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mine", handler.GetMyBookings)
		routerGroup.Post("/export", handler.ExportBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}/resolution", handler.ResolveBooking)
	})
}

// CreateBooking requests a room window for today.
// @Summary Create a booking
// @Description Reserve one window of a room for today. The slot becomes pending until an approver resolves it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error "missing_fields, invalid_window"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "duplicate_booking_today, slot_unavailable, conflict"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// ResolveBooking approves or rejects a pending booking.
// @Summary Resolve a booking
// @Description Approve or reject a pending booking. A comment is kept only for rejections.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ResolveBookingRequest true "Resolve Booking Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error "missing_fields, invalid_decision"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "already_resolved"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/resolution [put]
// @Security BearerAuth
func (handler *Handler) ResolveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "ResolveBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.ResolveBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err)

		return
	}

	if err := handler.service.Resolve(ctx, id, req); err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking resolved successfully")
}

// GetBookings lists bookings of every user.
// @Summary Get booking history
// @Description Bookings joined with room and user names, newest day first and windows in order.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Comma separated statuses (pending, approved, rejected)"
// @Param date query string false "Booking day (YYYY-MM-DD)"
// @Param user_id query string false "Booker ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.HistoryFilter{}
	if err := filter.FromRequest(r); err != nil {
		response.Fail(w, scope, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings lists the caller's own bookings.
// @Summary Get my bookings
// @Description status=pending shows open requests; status=approved,rejected shows history.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Comma separated statuses (pending, approved, rejected)"
// @Param date query string false "Booking day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.HistoryFilter{}
	if err := filter.FromRequest(r); err != nil {
		response.Fail(w, scope, err)

		return
	}

	filter.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// ExportBookings writes the filtered history to object storage as CSV.
// @Summary Export booking history
// @Description Uploads a CSV snapshot and returns a short lived download link.
// @Tags Booking
// @Produce json
// @Param status query string false "Comma separated statuses (pending, approved, rejected)"
// @Param date query string false "Booking day (YYYY-MM-DD)"
// @Param user_id query string false "Booker ID"
// @Success 201 {object} response.Data[dto.ExportResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/export [post]
// @Security BearerAuth
func (handler *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "ExportBookings")
	defer scope.End()

	filter := dto.HistoryFilter{}
	if err := filter.FromRequest(r); err != nil {
		response.Fail(w, scope, err)

		return
	}

	res, err := handler.service.Export(ctx, filter)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
