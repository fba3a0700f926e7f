package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"roomslot/config"
	"roomslot/infras/kafka"
	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/infras/s3"
	"roomslot/internal/domains/booking/model"
	"roomslot/internal/domains/booking/model/dto"
	"roomslot/internal/domains/booking/repository"
	slotModel "roomslot/internal/domains/slot/model"
	slotRepo "roomslot/internal/domains/slot/repository"
	slotService "roomslot/internal/domains/slot/service"
	"roomslot/shared"
	"roomslot/shared/cache"
	"roomslot/shared/clock"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	"roomslot/shared/failure"
	"roomslot/shared/timezone"
	"roomslot/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"

	exportDirectory = "exports"
	exportLimit     = 10000
	exportURLExpiry = 15 * time.Minute
)

var (
	ErrMissingFields         = failure.WithReason(http.StatusBadRequest, validator.ReasonMissingFields, "room, window and reason are required")
	ErrInvalidWindow         = failure.WithReason(http.StatusBadRequest, "invalid_window", "window must be between 1 and 4")
	ErrInvalidDecision       = failure.WithReason(http.StatusBadRequest, "invalid_decision", "decision must be approve or reject")
	ErrNotFound              = failure.WithReason(http.StatusNotFound, "not_found", "booking not found")
	ErrDuplicateBookingToday = failure.WithReason(http.StatusConflict, "duplicate_booking_today", "you already have a booking for today")
	ErrSlotUnavailable       = failure.WithReason(http.StatusConflict, "slot_unavailable", "slot is not available")
	ErrConflict              = failure.WithReason(http.StatusConflict, "conflict", "slot was taken by another request, try again")
	ErrAlreadyResolved       = failure.WithReason(http.StatusConflict, "already_resolved", "booking has already been resolved")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Resolve(ctx context.Context, id string, req dto.ResolveBookingRequest) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.HistoryFilter) (dto.GetBookingsResponse, error)
	Export(ctx context.Context, filter dto.HistoryFilter) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	slots    slotService.Slot
	slotRepo slotRepo.Slot
	tx       postgres.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
	s3       s3.S3
	clock    clock.Clock
}

func New(
	repo repository.Booking,
	slots slotService.Slot,
	slotRepo slotRepo.Slot,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
	s3 s3.S3,
	clk clock.Clock,
) Booking {
	return &serviceImpl{
		repo:     repo,
		slots:    slots,
		slotRepo: slotRepo,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
		s3:       s3,
		clock:    clk,
	}
}

// Create claims an available window for the calling user. The duplicate check, the
// policy write-back, the slot claim and the insert share one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if user == constant.Empty || strings.TrimSpace(req.RoomID) == constant.Empty || strings.TrimSpace(req.Reason) == constant.Empty || req.Window == 0 {
		return res, ErrMissingFields
	}

	if !req.Window.Valid() {
		return res, ErrInvalidWindow
	}

	now := s.clock.Now()
	booking := req.ToModel(user, now)

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		exist, err := s.repo.ExistForDayTx(ctx, tx, user, booking.RoomDate)
		if err != nil {
			log.Error().Err(err).Msg("failed to check existing booking")

			return fmt.Errorf("failed to check existing booking: %w", err)
		}

		if exist {
			return ErrDuplicateBookingToday
		}

		observed, current, err := s.slots.ApplyTx(ctx, tx, booking.RoomID, now)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if observed.Status(booking.Window) != slotModel.StatusAvailable {
			return ErrSlotUnavailable
		}

		if current.Status(booking.Window) != slotModel.StatusAvailable {
			return ErrConflict
		}

		claimed, err := s.slotRepo.CompareAndSetSlotTx(ctx, tx, booking.RoomID, booking.Window, slotModel.StatusAvailable, slotModel.StatusPending)
		if err != nil {
			log.Error().Err(err).Msg("failed to claim slot")

			return fmt.Errorf("failed to claim slot: %w", err)
		}

		if !claimed {
			return ErrConflict
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			if postgres.IsUniqueViolation(err, model.UniqueUserDay) {
				return ErrDuplicateBookingToday
			}

			log.Error().Err(err).Msg("failed to insert booking")

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	log.Info().Str("booking_id", booking.ID).Str("room_id", booking.RoomID).Int("window", int(booking.Window)).Msg("booking created")

	s.publish(ctx, model.EventBookingCreated, model.NewEvent(booking, now))
	s.invalidate(ctx, booking.ID)

	res.ID = booking.ID

	return res, nil
}

// Resolve approves or rejects a pending booking once. When the booking is for the
// room's current day its slot moves to Reserved or back to Available, provided the
// slot is still Pending. An approval whose slot is no longer Pending is rolled back.
func (s *serviceImpl) Resolve(ctx context.Context, id string, req dto.ResolveBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	approver, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if approver == constant.Empty || strings.TrimSpace(id) == constant.Empty || req.Decision == constant.Empty {
		return ErrMissingFields
	}

	if !req.Decision.Valid() {
		return ErrInvalidDecision
	}

	now := s.clock.Now()
	status := req.Decision.Status()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.GetTx(ctx, tx, id)
		if err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if found.ID == constant.Empty {
			return ErrNotFound
		}

		if found.Status != model.StatusPending {
			return ErrAlreadyResolved
		}

		resolved, err := s.repo.ResolveTx(ctx, tx, id, status, approver, req.StoredComment(), now)
		if err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to resolve booking")

			return fmt.Errorf("failed to resolve booking: %w", err)
		}

		if !resolved {
			return ErrAlreadyResolved
		}

		booking = found
		booking.Status = status
		booking.ApproverID = &approver

		return s.releaseSlot(ctx, tx, booking, now)
	})
	if err != nil {
		return err
	}

	log.Info().Str("booking_id", id).Str("status", string(status)).Str("approver_id", approver).Msg("booking resolved")

	s.publish(ctx, model.EventBookingResolved, model.NewEvent(booking, now))
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) releaseSlot(ctx context.Context, tx *sqlx.Tx, booking model.Booking, now time.Time) error {
	_, current, err := s.slots.ApplyTx(ctx, tx, booking.RoomID, now)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if current.SlotDate != booking.RoomDate {
		log.Info().Str("booking_id", booking.ID).Str("room_date", booking.RoomDate.String()).Msg("booking is for an earlier day, slot left as is")

		return nil
	}

	next := slotModel.StatusAvailable
	if booking.Status == model.StatusApproved {
		next = slotModel.StatusReserved
	}

	moved, err := s.slotRepo.CompareAndSetSlotTx(ctx, tx, booking.RoomID, booking.Window, slotModel.StatusPending, next)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update slot")

		return fmt.Errorf("failed to update slot: %w", err)
	}

	if moved {
		return nil
	}

	log.Warn().
		Str("booking_id", booking.ID).
		Str("slot_status", string(current.Status(booking.Window))).
		Msg("slot no longer pending, left as is")

	if booking.Status == model.StatusApproved {
		return ErrSlotUnavailable
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, ErrNotFound
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.HistoryFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.SortBy = dto.HistoryOrder
	params.SortDir = constant.Empty
	where := filter.ToFilterGroup()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, where)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Export writes the matching history as CSV to object storage and returns a
// short-lived download link.
func (s *serviceImpl) Export(ctx context.Context, filter dto.HistoryFilter) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: dto.HistoryOrder, Limit: exportLimit}, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return res, fmt.Errorf("failed to get bookings for export: %w", err)
	}

	data, err := toCSV(bookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode export")

		return res, fmt.Errorf("failed to encode export: %w", err)
	}

	fileName := fmt.Sprintf("bookings-%s.csv", s.clock.Now().Format(constant.ExportFormat))

	objectKey, err := s.s3.UploadFileBytes(ctx, exportDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload export")

		return res, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.s3.PresignGetURL(ctx, objectKey, exportURLExpiry)
	if err != nil {
		log.Error().Err(err).Str("object_key", objectKey).Msg("failed to presign export")

		return res, fmt.Errorf("failed to presign export: %w", err)
	}

	log.Info().Str("object_key", objectKey).Int("rows", len(bookings)).Msg("booking history exported")

	return dto.ExportResponse{ObjectKey: objectKey, URL: url, Rows: len(bookings)}, nil
}

var exportHeader = []string{
	"id", "date", "window", "room_number", "room_floor", "user_name", "user_email",
	"reason", "status", "approver_name", "approver_comment", "created_at",
}

func toCSV(bookings []model.BookingView) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	for _, b := range bookings {
		record := []string{
			b.ID,
			b.RoomDate.String(),
			b.Window.Label(),
			b.RoomNumber,
			b.RoomFloor,
			b.UserName,
			b.UserEmail,
			b.Reason,
			string(b.Status),
			deref(b.ApproverName),
			deref(b.ApproverComment),
			timezone.Format(b.CreatedAt, constant.DateFormat),
		}

		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()

	return buf.Bytes(), w.Error()
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, event model.Event) {
	msg := kafka.Message{Key: event.RoomID + ":" + strconv.Itoa(int(event.Window)), Type: eventType, Value: event}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Booking, msg); err != nil {
		log.Error().Err(err).Str("booking_id", event.ID).Str("type", eventType).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil && !errors.Is(err, cache.Nil) {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}
