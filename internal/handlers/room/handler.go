package room

import (
	"context"
	"io"
	"net/http"

	"roomslot/infras/otel"
	"roomslot/internal/domains/room/model/dto"
	"roomslot/internal/domains/room/service"
	slotDto "roomslot/internal/domains/slot/model/dto"
	slotService "roomslot/internal/domains/slot/service"
	"roomslot/shared/constant"
	"roomslot/shared/failure"
	"roomslot/shared/validator"
	"roomslot/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const formFieldImage = "image"

type Handler struct {
	service service.Room
	slots   slotService.Slot
	otel    otel.Otel
}

func New(service service.Room, slots slotService.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		slots:   slots,
		otel:    otel,
	}
}

func (handler *Handler) trace(r *http.Request, op string) (context.Context, otel.Scope) {
	return handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Put("/{id}/status", handler.UpdateRoomStatus)
		routerGroup.Put("/{id}/image", handler.UploadRoomImage)
	})

	router.Get("/staff/rooms", handler.GetStaffRooms)
}

// GetRooms lists every room with today's slots.
// @Summary Get rooms with today's slots
// @Description Every room with the status of its four windows after rollover and expiry are applied.
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[slotDto.GetRoomSlotsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetRooms")
	defer scope.End()

	rooms, err := handler.slots.GetRooms(ctx)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetStaffRooms lists rooms with their derived state for staff.
// @Summary Get rooms for staff
// @Description Rooms with today's slots and a derived state: enabled, disabled, reserved or pending.
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[slotDto.GetStaffRoomsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetStaffRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetStaffRooms")
	defer scope.End()

	rooms, err := handler.slots.GetStaffRooms(ctx)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room; its four slots start available for today.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.CreateRoomResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

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
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates the number or capacity of a room.
// @Summary Update a room by ID
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		response.Fail(w, scope, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// UpdateRoomStatus enables or disables a room.
// @Summary Enable or disable a room
// @Description disable marks all four slots disabled and is refused while a slot is pending or reserved; enable frees disabled slots and reapplies expiry.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body slotDto.UpdateRoomStatusRequest true "Update Room Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "UpdateRoomStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := slotDto.UpdateRoomStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err)

		return
	}

	if err := handler.slots.UpdateStatus(ctx, id, req); err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room status updated successfully")
}

// UploadRoomImage stores a room picture and points the room at it.
// @Summary Upload a room image
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param image formData file true "PNG or JPEG, at most 1MB"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/image [put]
// @Security BearerAuth
func (handler *Handler) UploadRoomImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "UploadRoomImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		response.Fail(w, scope, failure.WithReason(http.StatusBadRequest, validator.ReasonInvalidBody, "failed to parse multipart form"))

		return
	}

	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		response.Fail(w, scope, failure.WithReason(http.StatusBadRequest, validator.ReasonMissingFields, "image is required"))

		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Fail(w, scope, failure.BadRequest(err))

		return
	}

	image := dto.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Data:        data,
	}

	room, err := handler.service.UploadImage(ctx, id, image)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}
