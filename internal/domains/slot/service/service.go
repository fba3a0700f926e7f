package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roomslot/config"
	"roomslot/infras/kafka"
	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/internal/domains/slot/model"
	"roomslot/internal/domains/slot/model/dto"
	"roomslot/internal/domains/slot/policy"
	"roomslot/internal/domains/slot/repository"
	"roomslot/shared/clock"
	"roomslot/shared/constant"
	"roomslot/shared/failure"
	gModel "roomslot/shared/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// maxSettleAttempts bounds how often a policy write-back is retried after losing to
// a concurrent writer on the same row.
const maxSettleAttempts = 3

var (
	ErrRoomNotFound = failure.WithReason(http.StatusNotFound, "not_found", "room not found")
	ErrConflict     = failure.WithReason(http.StatusConflict, "conflict", "room slots changed concurrently, try again")
	ErrRoomInUse    = failure.WithReason(http.StatusConflict, "room_in_use", "room has pending or reserved slots today")
)

type Slot interface {
	ListForDate(ctx context.Context) ([]model.RoomSlotsView, error)
	ListForDateTx(ctx context.Context, tx *sqlx.Tx, now time.Time) ([]model.RoomSlotsView, error)
	ApplyTx(ctx context.Context, tx *sqlx.Tx, roomID string, now time.Time) (observed, current model.RoomSlots, err error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, roomID string) error
	GetRooms(ctx context.Context) (dto.GetRoomSlotsResponse, error)
	GetStaffRooms(ctx context.Context) (dto.GetStaffRoomsResponse, error)
	UpdateStatus(ctx context.Context, roomID string, req dto.UpdateRoomStatusRequest) error
}

type serviceImpl struct {
	repo  repository.Slot
	tx    postgres.Transactor
	cfg   *config.Config
	otel  otel.Otel
	kafka kafka.Client
	clock clock.Clock
	scope model.ExpiryScope
}

func New(repo repository.Slot, tx postgres.Transactor, cfg *config.Config, otel otel.Otel, kafka kafka.Client, clk clock.Clock) Slot {
	return &serviceImpl{
		repo:  repo,
		tx:    tx,
		cfg:   cfg,
		otel:  otel,
		kafka: kafka,
		clock: clk,
		scope: model.ParseExpiryScope(cfg.App.SlotExpiryScope),
	}
}

// ListForDate returns every room's row for today with the temporal policy applied
// and written back.
func (s *serviceImpl) ListForDate(ctx context.Context) (res []model.RoomSlotsView, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.ListForDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var txErr error

		res, txErr = s.ListForDateTx(ctx, tx, now)

		return txErr
	})

	return res, err
}

func (s *serviceImpl) ListForDateTx(ctx context.Context, tx *sqlx.Tx, now time.Time) ([]model.RoomSlotsView, error) {
	views, err := s.repo.ListTx(ctx, tx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list room slots")

		return nil, fmt.Errorf("failed to list room slots: %w", err)
	}

	for i := range views {
		_, current, err := s.settle(ctx, tx, now, views[i].RoomSlots)
		if err != nil {
			return nil, err
		}

		views[i].RoomSlots = current
	}

	return views, nil
}

// ApplyTx reads one room's row, applies the policy at now and writes the result back.
// observed is the policy view of the first read; current is what the row holds once
// the write-back went through, which differs only when another writer got in between.
func (s *serviceImpl) ApplyTx(ctx context.Context, tx *sqlx.Tx, roomID string, now time.Time) (observed, current model.RoomSlots, err error) {
	raw, err := s.repo.GetTx(ctx, tx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room slots")

		return observed, current, fmt.Errorf("failed to get room slots: %w", err)
	}

	if raw.RoomID == constant.Empty {
		return observed, current, ErrRoomNotFound
	}

	return s.settle(ctx, tx, now, raw)
}

func (s *serviceImpl) settle(ctx context.Context, tx *sqlx.Tx, now time.Time, raw model.RoomSlots) (observed, current model.RoomSlots, err error) {
	roomID := raw.RoomID
	observed, _ = policy.Apply(now, raw, s.scope)

	for attempt := 1; ; attempt++ {
		next, changed := policy.Apply(now, raw, s.scope)
		if !changed {
			return observed, next, nil
		}

		saved, err := s.repo.SaveTx(ctx, tx, raw, next)
		if err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to save room slots")

			return observed, current, fmt.Errorf("failed to save room slots: %w", err)
		}

		if saved {
			return observed, next, nil
		}

		if attempt == maxSettleAttempts {
			log.Warn().Str("room_id", roomID).Int("attempts", attempt).Msg("gave up saving room slots")

			return observed, current, ErrConflict
		}

		raw, err = s.repo.GetTx(ctx, tx, roomID)
		if err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to reload room slots")

			return observed, current, fmt.Errorf("failed to reload room slots: %w", err)
		}

		if raw.RoomID == constant.Empty {
			return observed, current, ErrRoomNotFound
		}
	}
}

// CreateTx inserts the all-available row for a new room.
func (s *serviceImpl) CreateTx(ctx context.Context, tx *sqlx.Tx, roomID string) error {
	if err := s.repo.InsertTx(ctx, tx, model.NewRoomSlots(roomID, gModel.DateOf(s.clock.Now()))); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to create room slots")

		return fmt.Errorf("failed to create room slots: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetRooms(ctx context.Context) (res dto.GetRoomSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.GetRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	views, err := s.ListForDate(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(gModel.DateOf(s.clock.Now()).String(), views)

	return res, nil
}

func (s *serviceImpl) GetStaffRooms(ctx context.Context) (res dto.GetStaffRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.GetStaffRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	views, err := s.ListForDate(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(gModel.DateOf(s.clock.Now()).String(), views)

	return res, nil
}

// UpdateStatus disables every window of a room, or brings Disabled windows back and
// lets the policy expire the ones that already ended. The row stays locked for the
// whole change. A room is not disabled while a window today is Pending or Reserved.
func (s *serviceImpl) UpdateStatus(ctx context.Context, roomID string, req dto.UpdateRoomStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		raw, err := s.repo.LockTx(ctx, tx, roomID)
		if err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room slots")

			return fmt.Errorf("failed to lock room slots: %w", err)
		}

		if raw.RoomID == constant.Empty {
			return ErrRoomNotFound
		}

		_, current, err := s.settle(ctx, tx, now, raw)
		if err != nil {
			return err
		}

		if req.Action == dto.ActionDisable {
			return s.disable(ctx, tx, current)
		}

		next, _ := policy.Apply(now, policy.Enable(current), s.scope)

		saved, err := s.repo.SaveTx(ctx, tx, current, next)
		if err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to enable room")

			return fmt.Errorf("failed to enable room: %w", err)
		}

		if !saved {
			return ErrConflict
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Str("room_id", roomID).Str("action", string(req.Action)).Str("user_id", user).Msg("room status changed")

	s.publish(ctx, model.StatusChangedEvent{RoomID: roomID, Action: string(req.Action), ChangedBy: user, ChangedAt: now})

	return nil
}

// disable must run with the row locked by LockTx.
func (s *serviceImpl) disable(ctx context.Context, tx *sqlx.Tx, current model.RoomSlots) error {
	if current.Any(model.StatusPending) || current.Any(model.StatusReserved) {
		log.Info().Str("room_id", current.RoomID).Str("state", string(current.State())).Msg("room in use, not disabled")

		return ErrRoomInUse
	}

	for _, w := range model.Windows {
		if current.Status(w) == model.StatusDisabled {
			continue
		}

		if err := s.repo.SetSlotTx(ctx, tx, current.RoomID, w, model.StatusDisabled); err != nil {
			log.Error().Err(err).Str("room_id", current.RoomID).Msg("failed to disable slot")

			return fmt.Errorf("failed to disable room: %w", err)
		}
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, event model.StatusChangedEvent) {
	msg := kafka.Message{Key: event.RoomID, Type: model.EventRoomStatusChanged, Value: event}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Room, msg); err != nil {
		log.Error().Err(err).Str("room_id", event.RoomID).Msg("failed to publish room status event")
	}
}
