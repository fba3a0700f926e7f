package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"roomslot/config"
	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/infras/s3"
	"roomslot/internal/domains/room/model"
	"roomslot/internal/domains/room/model/dto"
	"roomslot/internal/domains/room/repository"
	slotService "roomslot/internal/domains/slot/service"
	"roomslot/shared"
	"roomslot/shared/cache"
	"roomslot/shared/clock"
	"roomslot/shared/constant"
	"roomslot/shared/failure"
	"roomslot/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom = "room:get"
)

var (
	ErrNotFound        = failure.WithReason(http.StatusNotFound, "not_found", "room not found")
	ErrDuplicateNumber = failure.WithReason(http.StatusConflict, "duplicate_room_number", "room number already exists on this floor")
	ErrNothingToUpdate = failure.WithReason(http.StatusBadRequest, validator.ReasonMissingFields, "number or capacity is required")
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.CreateRoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UploadImage(ctx context.Context, id string, image dto.ImageUpload) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo  repository.Room
	slots slotService.Slot
	tx    postgres.Transactor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
	clock clock.Clock
}

func New(repo repository.Room, slots slotService.Slot, tx postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, clk clock.Clock) Room {
	return &serviceImpl{
		repo:  repo,
		slots: slots,
		tx:    tx,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
		clock: clk,
	}
}

// Create adds a room together with its all-available slot row for today.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.CreateRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user, s.clock.Now())

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, room); err != nil {
			if postgres.IsUniqueViolation(err, model.UniqueFloorNumber) {
				return ErrDuplicateNumber
			}

			log.Error().Err(err).Msg("failed to insert room")

			return fmt.Errorf("failed to insert room: %w", err)
		}

		return s.slots.CreateTx(ctx, tx, room.ID)
	})
	if err != nil {
		return res, err
	}

	log.Info().Str("room_id", room.ID).Str("number", room.Number).Str("floor", room.Floor).Msg("room created")

	res.ID = room.ID

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, ErrNotFound
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return ErrNothingToUpdate
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	found, err := s.repo.UpdateByID(ctx, id, shared.TransformFields(req, user))
	if err != nil {
		if postgres.IsUniqueViolation(err, model.UniqueFloorNumber) {
			return ErrDuplicateNumber
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	if !found {
		return ErrNotFound
	}

	s.invalidate(ctx, id)

	return nil
}

// UploadImage stores a room picture in object storage and points the room at it.
func (s *serviceImpl) UploadImage(ctx context.Context, id string, image dto.ImageUpload) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err := image.Validate(); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if room.ID == constant.Empty {
		return res, ErrNotFound
	}

	objectKey, err := s.s3.UploadFileBytes(ctx, model.EntityName, image.ObjectName(), image.ContentType, image.Data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload room image: %w", err)
	}

	mod := map[string]any{
		model.FieldImage:         objectKey,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	}

	found, err := s.repo.UpdateByID(ctx, id, mod)
	if err != nil {
		log.Error().Err(err).Msg("failed to save room image")

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	if !found {
		return res, ErrNotFound
	}

	s.invalidate(ctx, id)

	room.Image = objectKey
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}
	}()
}
