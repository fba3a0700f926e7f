package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"roomslot/config"
	kafkaMocks "roomslot/infras/kafka/mocks"
	otelMocks "roomslot/infras/otel/mocks"
	txMocks "roomslot/infras/postgres/mocks"
	s3Mocks "roomslot/infras/s3/mocks"
	bookingMocks "roomslot/internal/domains/booking/mocks"
	"roomslot/internal/domains/booking/model"
	"roomslot/internal/domains/booking/model/dto"
	"roomslot/internal/domains/booking/service"
	slotMocks "roomslot/internal/domains/slot/mocks"
	slotModel "roomslot/internal/domains/slot/model"
	slotDto "roomslot/internal/domains/slot/model/dto"
	slotService "roomslot/internal/domains/slot/service"
	cacheMocks "roomslot/shared/cache/mocks"
	"roomslot/shared/clock"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	"roomslot/shared/failure"
	gModel "roomslot/shared/model"
)

const roomID = "room-101"

var (
	loc       = time.FixedZone("ICT", 7*60*60)
	today     = gModel.Date("2024-06-10")
	yesterday = gModel.Date("2024-06-09")
)

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, second, 0, loc)
}

// slotStore backs the slot repository mock with one in-memory row per room and
// applies guarded writes the way the database does.
type slotStore struct {
	mu   sync.Mutex
	rows map[string]slotModel.RoomSlots
	// onRead runs after every read, outside the lock.
	onRead func()
}

func (m *slotStore) row(id string) slotModel.RoomSlots {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.rows[id]
}

func (m *slotStore) bind(repo *slotMocks.MockSlotRepository) {
	repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, id string) (slotModel.RoomSlots, error) {
			row := m.row(id)

			if m.onRead != nil {
				m.onRead()
			}

			return row, nil
		}).AnyTimes()

	repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, id string) (slotModel.RoomSlots, error) {
			return m.row(id), nil
		}).AnyTimes()

	repo.EXPECT().SetSlotTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, id string, w slotModel.Window, next slotModel.Status) error {
			m.mu.Lock()
			defer m.mu.Unlock()

			row := m.rows[id]
			row.SetStatus(w, next)
			m.rows[id] = row

			return nil
		}).AnyTimes()

	repo.EXPECT().SaveTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, before, after slotModel.RoomSlots) (bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()

			if m.rows[before.RoomID] != before {
				return false, nil
			}

			m.rows[before.RoomID] = after

			return true, nil
		}).AnyTimes()

	repo.EXPECT().CompareAndSetSlotTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, id string, w slotModel.Window, expected, next slotModel.Status) (bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()

			row := m.rows[id]
			if row.Status(w) != expected {
				return false, nil
			}

			row.SetStatus(w, next)
			m.rows[id] = row

			return true, nil
		}).AnyTimes()
}

type fixture struct {
	slots    *slotStore
	bookings *bookingMocks.MockBookingRepository
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	clock    *clock.FakeClock
	tx       *txMocks.Transactor
	rooms    slotService.Slot
	svc      service.Booking
}

func setup(t *testing.T, now time.Time, row slotModel.RoomSlots) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Booking = "bookings"
	cfg.Kafka.Topics.Room = "rooms"
	cfg.Cache.TTL = 60

	f := &fixture{
		slots:    &slotStore{rows: map[string]slotModel.RoomSlots{row.RoomID: row}},
		bookings: bookingMocks.NewMockBookingRepository(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		clock:    clock.Fake(now),
	}

	slotRepo := slotMocks.NewMockSlotRepository(ctrl)
	f.slots.bind(slotRepo)

	otel := otelMocks.NewOtel()
	f.tx = txMocks.NewTransactor()
	f.rooms = slotService.New(slotRepo, f.tx, cfg, otel, f.kafka, f.clock)

	f.svc = service.New(f.bookings, f.rooms, slotRepo, f.tx, cfg, f.cache, otel, f.kafka, f.s3, f.clock)

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func slots(date gModel.Date, s1, s2, s3, s4 slotModel.Status) slotModel.RoomSlots {
	return slotModel.RoomSlots{RoomID: roomID, SlotDate: date, Slot1: s1, Slot2: s2, Slot3: s3, Slot4: s4}
}

func allAvailable(date gModel.Date) slotModel.RoomSlots {
	return slotModel.NewRoomSlots(roomID, date)
}

func asUser(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestBookingService_Create(t *testing.T) {
	t.Run("claims an available window", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.Equal(t, "user-1", b.UserID)
				assert.Equal(t, roomID, b.RoomID)
				assert.Equal(t, slotModel.Window1000, b.Window)
				assert.Equal(t, "Sprint planning", b.Reason)
				assert.Equal(t, today, b.RoomDate)
				assert.Equal(t, model.StatusPending, b.Status)

				return nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		res, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window1000, Reason: " Sprint planning "})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, slots(today, slotModel.StatusAvailable, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable), f.slots.row(roomID))
	})

	t.Run("first read of the day rolls the row over before claiming", func(t *testing.T) {
		f := setup(t, at(8, 30, 0), slots(yesterday, slotModel.StatusReserved, slotModel.StatusExpired, slotModel.StatusDisabled, slotModel.StatusPending))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window0800, Reason: "Standup"})

		require.NoError(t, err)
		assert.Equal(t, slots(today, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusDisabled, slotModel.StatusAvailable), f.slots.row(roomID))
	})

	t.Run("window that ended a second ago is unavailable", func(t *testing.T) {
		f := setup(t, at(10, 0, 1), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, nil)

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window0800, Reason: "Standup"})

		assert.ErrorIs(t, err, service.ErrSlotUnavailable)
		assert.Equal(t, slotModel.StatusExpired, f.slots.row(roomID).Slot1)
	})

	t.Run("window just before its end is still bookable", func(t *testing.T) {
		f := setup(t, at(9, 59, 59), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window0800, Reason: "Standup"})

		assert.NoError(t, err)
	})

	t.Run("pending window is unavailable", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), slots(today, slotModel.StatusAvailable, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-2", today).Return(false, nil)

		_, err := f.svc.Create(asUser("user-2"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window1000, Reason: "Retro"})

		assert.ErrorIs(t, err, service.ErrSlotUnavailable)
	})

	t.Run("second booking of the day", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(true, nil)

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window1300, Reason: "Retro"})

		assert.ErrorIs(t, err, service.ErrDuplicateBookingToday)
		assert.True(t, f.slots.row(roomID).All(slotModel.StatusAvailable))
	})

	t.Run("unique index catches a racing second booking", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23505", Constraint: model.UniqueUserDay}))

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window1300, Reason: "Retro"})

		assert.ErrorIs(t, err, service.ErrDuplicateBookingToday)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, nil)

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: "room-999", Window: slotModel.Window1300, Reason: "Retro"})

		assert.ErrorIs(t, err, slotService.ErrRoomNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-1", today).Return(false, errors.New("connection reset"))

		_, err := f.svc.Create(asUser("user-1"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window1300, Reason: "Retro"})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Empty(t, failure.GetReason(err))
	})

	invalid := []struct {
		name string
		ctx  context.Context
		req  dto.CreateBookingRequest
		want error
	}{
		{name: "blank reason", ctx: asUser("user-1"), req: dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window0800, Reason: "  "}, want: service.ErrMissingFields},
		{name: "missing room", ctx: asUser("user-1"), req: dto.CreateBookingRequest{Window: slotModel.Window0800, Reason: "Standup"}, want: service.ErrMissingFields},
		{name: "missing window", ctx: asUser("user-1"), req: dto.CreateBookingRequest{RoomID: roomID, Reason: "Standup"}, want: service.ErrMissingFields},
		{name: "anonymous", ctx: context.Background(), req: dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window0800, Reason: "Standup"}, want: service.ErrMissingFields},
		{name: "window out of range", ctx: asUser("user-1"), req: dto.CreateBookingRequest{RoomID: roomID, Window: 7, Reason: "Standup"}, want: service.ErrInvalidWindow},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, at(9, 0, 0), allAvailable(today))

			_, err := f.svc.Create(tt.ctx, tt.req)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookingService_CreateConcurrently(t *testing.T) {
	f := setup(t, at(9, 0, 0), allAvailable(today))

	// Both requests read the row before either claims the window.
	var reads sync.WaitGroup
	reads.Add(2)
	f.slots.onRead = func() {
		reads.Done()
		reads.Wait()
	}

	f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), gomock.Any(), today).Return(false, nil).Times(2)
	f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil).Times(1)

	errs := make([]error, 2)

	var group errgroup.Group
	for i := range errs {
		group.Go(func() error {
			_, errs[i] = f.svc.Create(asUser(fmt.Sprintf("user-%d", i)), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window1300, Reason: "Demo"})

			return nil
		})
	}

	require.NoError(t, group.Wait())

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, slotModel.StatusPending, f.slots.row(roomID).Slot3)
}

func pending(id string, date gModel.Date, w slotModel.Window) model.Booking {
	return model.Booking{ID: id, UserID: "user-1", RoomID: roomID, Window: w, Reason: "Demo", RoomDate: date, Status: model.StatusPending}
}

func TestBookingService_Resolve(t *testing.T) {
	approver := asUser("approver-1")
	comment := "  Room needed for audit "

	t.Run("approve reserves the slot and drops the comment", func(t *testing.T) {
		f := setup(t, at(11, 0, 0), slots(today, slotModel.StatusExpired, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-1").Return(pending("b-1", today, slotModel.Window1000), nil)
		f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-1", model.StatusApproved, "approver-1", nil, at(11, 0, 0)).Return(true, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{Decision: dto.DecisionApprove, Comment: &comment})

		require.NoError(t, err)
		assert.Equal(t, slotModel.StatusReserved, f.slots.row(roomID).Slot2)
	})

	t.Run("reject frees the slot and keeps the comment", func(t *testing.T) {
		f := setup(t, at(11, 0, 0), slots(today, slotModel.StatusExpired, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-1").Return(pending("b-1", today, slotModel.Window1000), nil)
		f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-1", model.StatusRejected, "approver-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, _ model.Status, _ string, stored *string, _ time.Time) (bool, error) {
				require.NotNil(t, stored)
				assert.Equal(t, "Room needed for audit", *stored)

				return true, nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{Decision: dto.DecisionReject, Comment: &comment})

		require.NoError(t, err)
		assert.Equal(t, slotModel.StatusAvailable, f.slots.row(roomID).Slot2)
	})

	t.Run("second resolution is rejected", func(t *testing.T) {
		f := setup(t, at(11, 0, 0), allAvailable(today))

		resolved := pending("b-1", today, slotModel.Window1000)
		resolved.Status = model.StatusApproved

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-1").Return(resolved, nil)

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{Decision: dto.DecisionReject})

		assert.ErrorIs(t, err, service.ErrAlreadyResolved)
		assert.True(t, f.slots.row(roomID).All(slotModel.StatusAvailable))
	})

	t.Run("losing a concurrent resolution", func(t *testing.T) {
		f := setup(t, at(11, 0, 0), slots(today, slotModel.StatusAvailable, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-1").Return(pending("b-1", today, slotModel.Window1000), nil)
		f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-1", model.StatusApproved, "approver-1", nil, gomock.Any()).Return(false, nil)

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{Decision: dto.DecisionApprove})

		assert.ErrorIs(t, err, service.ErrAlreadyResolved)
		assert.Equal(t, slotModel.StatusPending, f.slots.row(roomID).Slot2)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := setup(t, at(11, 0, 0), allAvailable(today))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "missing").Return(model.Booking{}, nil)

		err := f.svc.Resolve(approver, "missing", dto.ResolveBookingRequest{Decision: dto.DecisionApprove})

		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("booking from an earlier day leaves today's slot alone", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), slots(yesterday, slotModel.StatusReserved, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-old").Return(pending("b-old", yesterday, slotModel.Window1000), nil)
		f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-old", model.StatusApproved, "approver-1", nil, gomock.Any()).Return(true, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		err := f.svc.Resolve(approver, "b-old", dto.ResolveBookingRequest{Decision: dto.DecisionApprove})

		require.NoError(t, err)
		assert.Equal(t, allAvailable(today), f.slots.row(roomID))
	})

	t.Run("disabled slot is not overwritten", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), slots(today, slotModel.StatusDisabled, slotModel.StatusDisabled, slotModel.StatusDisabled, slotModel.StatusDisabled))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-1").Return(pending("b-1", today, slotModel.Window1000), nil)
		f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-1", model.StatusRejected, "approver-1", nil, gomock.Any()).Return(true, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil)

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{Decision: dto.DecisionReject})

		require.NoError(t, err)
		assert.True(t, f.slots.row(roomID).All(slotModel.StatusDisabled))
	})

	t.Run("approval is rolled back when the slot is no longer pending", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), slots(today, slotModel.StatusReserved, slotModel.StatusAvailable, slotModel.StatusAvailable, slotModel.StatusAvailable))

		f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-2").Return(pending("b-2", today, slotModel.Window0800), nil)
		f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-2", model.StatusApproved, "approver-1", nil, gomock.Any()).Return(true, nil)

		err := f.svc.Resolve(approver, "b-2", dto.ResolveBookingRequest{Decision: dto.DecisionApprove})

		assert.ErrorIs(t, err, service.ErrSlotUnavailable)
		assert.Equal(t, int32(1), f.tx.Rollbacks.Load())
		assert.Equal(t, slotModel.StatusReserved, f.slots.row(roomID).Slot1)
	})

	t.Run("invalid decision", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{Decision: "maybe"})

		assert.ErrorIs(t, err, service.ErrInvalidDecision)
	})

	t.Run("missing decision", func(t *testing.T) {
		f := setup(t, at(9, 0, 0), allAvailable(today))

		err := f.svc.Resolve(approver, "b-1", dto.ResolveBookingRequest{})

		assert.ErrorIs(t, err, service.ErrMissingFields)
	})
}

func TestBookingService_RoomStatusWhileBooked(t *testing.T) {
	staff := asUser("staff-1")
	disable := slotDto.UpdateRoomStatusRequest{Action: slotDto.ActionDisable}
	enable := slotDto.UpdateRoomStatusRequest{Action: slotDto.ActionEnable}

	f := setup(t, at(9, 0, 0), slots(today, slotModel.StatusPending, slotModel.StatusAvailable, slotModel.StatusAvailable, slotModel.StatusAvailable))

	f.kafka.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil).Times(1)
	f.kafka.EXPECT().SendMessages(gomock.Any(), "rooms", gomock.Any()).Return(nil).Times(2)

	err := f.rooms.UpdateStatus(staff, roomID, disable)
	require.ErrorIs(t, err, slotService.ErrRoomInUse)
	assert.Equal(t, slotModel.StatusPending, f.slots.row(roomID).Slot1)

	f.bookings.EXPECT().ExistForDayTx(gomock.Any(), gomock.Any(), "user-2", today).Return(false, nil)

	_, err = f.svc.Create(asUser("user-2"), dto.CreateBookingRequest{RoomID: roomID, Window: slotModel.Window0800, Reason: "Standup"})
	require.ErrorIs(t, err, service.ErrSlotUnavailable)

	f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), "b-1").Return(pending("b-1", today, slotModel.Window0800), nil)
	f.bookings.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "b-1", model.StatusRejected, "approver-1", nil, gomock.Any()).Return(true, nil)

	require.NoError(t, f.svc.Resolve(asUser("approver-1"), "b-1", dto.ResolveBookingRequest{Decision: dto.DecisionReject}))

	require.NoError(t, f.rooms.UpdateStatus(staff, roomID, disable))
	assert.True(t, f.slots.row(roomID).All(slotModel.StatusDisabled))

	require.NoError(t, f.rooms.UpdateStatus(staff, roomID, enable))
	assert.Equal(t, allAvailable(today), f.slots.row(roomID))
}

func TestBookingService_GetAll(t *testing.T) {
	f := setup(t, at(9, 0, 0), allAvailable(today))

	approverName := "Ana Approver"
	filter := dto.HistoryFilter{Statuses: []model.Status{model.StatusApproved, model.StatusRejected}, Date: today}
	views := []model.BookingView{
		{Booking: model.Booking{ID: "b-1", RoomDate: today, Window: slotModel.Window0800, Status: model.StatusApproved}, RoomNumber: "101", ApproverName: &approverName},
		{Booking: model.Booking{ID: "b-2", RoomDate: today, Window: slotModel.Window1300, Status: model.StatusRejected}, RoomNumber: "102"},
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
	f.bookings.EXPECT().Count(gomock.Any(), filter.ToFilterGroup()).Return(2, nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), filter.ToFilterGroup()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.BookingView, error) {
			assert.Equal(t, dto.HistoryOrder, params.SortBy)
			assert.Equal(t, 10, params.Limit)

			return views, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, filter)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, "08:00 - 10:00", res.Bookings[0].WindowLabel)
	assert.Equal(t, &approverName, res.Bookings[0].ApproverName)
	assert.Equal(t, "13:00 - 15:00", res.Bookings[1].WindowLabel)
}

func TestBookingService_Export(t *testing.T) {
	f := setup(t, at(17, 30, 0), allAvailable(today))

	comment := "Room needed for audit"
	views := []model.BookingView{
		{Booking: model.Booking{ID: "b-1", RoomDate: today, Window: slotModel.Window1500, Reason: "Demo, final", Status: model.StatusRejected, ApproverComment: &comment}, RoomNumber: "101", UserName: "Uma User"},
	}

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(views, nil)
	f.s3.EXPECT().UploadFileBytes(gomock.Any(), "exports", "bookings-20240610T173000.csv", constant.ContentTypeCSV, gomock.Any()).
		DoAndReturn(func(_ context.Context, dir, name, _ string, data []byte) (string, error) {
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			require.Len(t, lines, 2)
			assert.True(t, strings.HasPrefix(lines[0], "id,date,window"))
			assert.Contains(t, lines[1], `"Demo, final"`)
			assert.Contains(t, lines[1], "15:00 - 17:00")
			assert.Contains(t, lines[1], comment)

			return dir + "/" + name, nil
		})
	f.s3.EXPECT().PresignGetURL(gomock.Any(), "exports/bookings-20240610T173000.csv", 15*time.Minute).Return("https://s3.local/exports/x?sig=1", nil)

	res, err := f.svc.Export(context.Background(), dto.HistoryFilter{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, "https://s3.local/exports/x?sig=1", res.URL)
}
