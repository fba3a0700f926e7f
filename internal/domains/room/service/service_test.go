package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomslot/config"
	otelMocks "roomslot/infras/otel/mocks"
	txMocks "roomslot/infras/postgres/mocks"
	s3Mocks "roomslot/infras/s3/mocks"
	roomMocks "roomslot/internal/domains/room/mocks"
	"roomslot/internal/domains/room/model"
	"roomslot/internal/domains/room/model/dto"
	"roomslot/internal/domains/room/service"
	slotMocks "roomslot/internal/domains/slot/mocks"
	cacheMocks "roomslot/shared/cache/mocks"
	"roomslot/shared/clock"
	"roomslot/shared/constant"
)

type fixture struct {
	repo  *roomMocks.MockRoomRepository
	slots *slotMocks.MockSlot
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	tx    *txMocks.Transactor
	svc   service.Room
}

func setup(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  roomMocks.NewMockRoomRepository(ctrl),
		slots: slotMocks.NewMockSlot(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
		tx:    txMocks.NewTransactor(),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	f.svc = service.New(f.repo, f.slots, f.tx, cfg, f.cache, otelMocks.NewOtel(), f.s3, clock.Fake(now))

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

var staff = context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{Number: " 301 ", Floor: "3", Capacity: 8}

	t.Run("creates room and slot row together", func(t *testing.T) {
		f := setup(t)

		var created model.Room
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, room model.Room) error {
				created = room

				return nil
			})
		f.slots.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, roomID string) error {
				assert.Equal(t, created.ID, roomID)

				return nil
			})

		res, err := f.svc.Create(staff, req)

		require.NoError(t, err)
		assert.Equal(t, created.ID, res.ID)
		assert.Equal(t, "301", created.Number)
		assert.Equal(t, "staff-1", created.CreatedBy)
		assert.Equal(t, int32(1), f.tx.Commits.Load())
	})

	t.Run("number taken on the floor", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (room): %w", &pq.Error{Code: "23505", Constraint: model.UniqueFloorNumber}))

		_, err := f.svc.Create(staff, req)

		assert.ErrorIs(t, err, service.ErrDuplicateNumber)
		assert.Equal(t, int32(1), f.tx.Rollbacks.Load())
	})

	t.Run("slot row failure rolls back the room", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.slots.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(staff, req)

		assert.Error(t, err)
		assert.Equal(t, int32(1), f.tx.Rollbacks.Load())
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := setup(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:r-1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "r-1")

		assert.NoError(t, err)
	})

	t.Run("cache miss reads the store", func(t *testing.T) {
		f := setup(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:r-1", gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().GetByID(gomock.Any(), "r-1").Return(model.Room{ID: "r-1", Number: "101", Floor: "1", Capacity: 6}, nil)

		res, err := f.svc.Get(context.Background(), "r-1")

		require.NoError(t, err)
		assert.Equal(t, "101", res.Number)
		assert.Equal(t, 6, res.Capacity)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := setup(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().GetByID(gomock.Any(), "missing").Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestRoomService_Update(t *testing.T) {
	capacity := 12

	t.Run("updates the given fields", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().UpdateByID(gomock.Any(), "r-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, mod map[string]any) (bool, error) {
				assert.Equal(t, 12, mod[model.FieldCapacity])
				assert.NotContains(t, mod, model.FieldNumber)
				assert.Equal(t, "staff-1", mod[constant.FieldModifiedBy])

				return true, nil
			})

		err := f.svc.Update(staff, dto.UpdateRoomRequest{Capacity: &capacity}, "r-1")

		assert.NoError(t, err)
	})

	t.Run("nothing to update", func(t *testing.T) {
		f := setup(t)

		err := f.svc.Update(staff, dto.UpdateRoomRequest{}, "r-1")

		assert.ErrorIs(t, err, service.ErrNothingToUpdate)
	})

	t.Run("renaming onto a taken number", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().UpdateByID(gomock.Any(), "r-1", gomock.Any()).
			Return(false, &pq.Error{Code: "23505", Constraint: model.UniqueFloorNumber})

		err := f.svc.Update(staff, dto.UpdateRoomRequest{Number: "102"}, "r-1")

		assert.ErrorIs(t, err, service.ErrDuplicateNumber)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().UpdateByID(gomock.Any(), "missing", gomock.Any()).Return(false, nil)

		err := f.svc.Update(staff, dto.UpdateRoomRequest{Number: "102"}, "missing")

		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestRoomService_UploadImage(t *testing.T) {
	png := dto.ImageUpload{FileName: "Board.PNG", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

	t.Run("stores the object key", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().GetByID(gomock.Any(), "r-1").Return(model.Room{ID: "r-1", Number: "101"}, nil)
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), model.EntityName, gomock.Any(), "image/png", png.Data).
			DoAndReturn(func(_ context.Context, dir, name, _ string, _ []byte) (string, error) {
				assert.Contains(t, name, ".png")

				return dir + "/" + name, nil
			})
		f.repo.EXPECT().UpdateByID(gomock.Any(), "r-1", gomock.Any()).Return(true, nil)

		res, err := f.svc.UploadImage(staff, "r-1", png)

		require.NoError(t, err)
		assert.Contains(t, res.Image, "room/")
	})

	t.Run("rejects other content types", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.UploadImage(staff, "r-1", dto.ImageUpload{FileName: "a.gif", ContentType: "image/gif", Data: []byte{1}})

		assert.Error(t, err)
	})
}
