package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=Slot=MockSlotRepository

import (
	"context"
	"fmt"

	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/internal/domains/slot/model"
	"roomslot/shared"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	gRepo "roomslot/shared/repository"

	"github.com/jmoiron/sqlx"
)

const listOrder = "rooms.floor, rooms.number"

// Slot is the slot matrix store. Every operation runs on the caller's transaction so
// the policy write-back, the status check and the transition commit together.
type Slot interface {
	GetTx(ctx context.Context, tx *sqlx.Tx, roomID string) (model.RoomSlots, error)
	LockTx(ctx context.Context, tx *sqlx.Tx, roomID string) (model.RoomSlots, error)
	ListTx(ctx context.Context, tx *sqlx.Tx) ([]model.RoomSlotsView, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, slots model.RoomSlots) error
	SetSlotTx(ctx context.Context, tx *sqlx.Tx, roomID string, window model.Window, status model.Status) error
	CompareAndSetSlotTx(ctx context.Context, tx *sqlx.Tx, roomID string, window model.Window, expected, next model.Status) (bool, error)
	SaveTx(ctx context.Context, tx *sqlx.Tx, before, after model.RoomSlots) (bool, error)
}

type repositoryImpl struct {
	slots gRepo.Repository[model.RoomSlots]
	views gRepo.Repository[model.RoomSlotsView]
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		slots: gRepo.NewRepository[model.RoomSlots](model.EntityName, model.TableName, model.FieldRoomID, db, otel),
		views: gRepo.NewRepository[model.RoomSlotsView](model.EntityName, model.TableName, model.FieldRoomID, db, otel),
		otel:  otel,
	}
}

// GetTx returns a zero RoomSlots when the room has no row.
func (r *repositoryImpl) GetTx(ctx context.Context, tx *sqlx.Tx, roomID string) (model.RoomSlots, error) {
	return r.slots.GetTx(ctx, tx, shared.FilterByID(roomID, model.FieldRoomID, model.TableName)) //nolint:wrapcheck
}

// LockTx reads the room's row and holds it until tx ends, so guarded writes from
// other transactions wait and then miss.
func (r *repositoryImpl) LockTx(ctx context.Context, tx *sqlx.Tx, roomID string) (model.RoomSlots, error) {
	return r.slots.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, model.FieldRoomID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListTx(ctx context.Context, tx *sqlx.Tx) ([]model.RoomSlotsView, error) {
	return r.views.GetAllTx(ctx, tx, gDto.QueryParams{SortBy: listOrder}, gDto.FilterGroup{}) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, slots model.RoomSlots) error {
	return r.slots.InsertTx(ctx, tx, slots) //nolint:wrapcheck
}

// SetSlotTx overwrites one window whatever it currently holds.
func (r *repositoryImpl) SetSlotTx(ctx context.Context, tx *sqlx.Tx, roomID string, window model.Window, status model.Status) error {
	column, err := window.Column()
	if err != nil {
		return err
	}

	affected, err := r.slots.UpdateCountTx(ctx, tx, map[string]any{column: status}, shared.FilterByID(roomID, model.FieldRoomID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to set slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("failed to set slot: no slot row for room %s", roomID)
	}

	return nil
}

// CompareAndSetSlotTx moves one window from expected to next and reports whether it
// did. A concurrent writer that got there first leaves this update matching no row.
func (r *repositoryImpl) CompareAndSetSlotTx(ctx context.Context, tx *sqlx.Tx, roomID string, window model.Window, expected, next model.Status) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.CompareAndSetSlotTx")
	defer scope.End()

	column, err := window.Column()
	if err != nil {
		return false, err
	}

	scope.SetAttributes(map[string]any{
		"slot.room_id":  roomID,
		"slot.window":   int(window),
		"slot.expected": string(expected),
		"slot.next":     string(next),
	})

	filter := gDto.And(
		gDto.Eq(model.TableName, model.FieldRoomID, roomID),
		gDto.Guard("expected", model.TableName, column, expected),
	)

	affected, err := r.slots.UpdateCountTx(ctx, tx, map[string]any{column: next}, filter)
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to compare and set slot: %w", err)
	}

	return affected == 1, nil
}

// SaveTx writes a policy result back, guarded on the whole row still looking like
// before. False means another writer changed the row first.
func (r *repositoryImpl) SaveTx(ctx context.Context, tx *sqlx.Tx, before, after model.RoomSlots) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.SaveTx")
	defer scope.End()

	mod := map[string]any{model.FieldSlotDate: after.SlotDate}
	filter := gDto.And(
		gDto.Eq(model.TableName, model.FieldRoomID, before.RoomID),
		gDto.Guard("was", model.TableName, model.FieldSlotDate, before.SlotDate),
	)

	for _, w := range model.Windows {
		column, _ := w.Column()

		mod[column] = after.Status(w)
		filter.Add(gDto.Guard("was", model.TableName, column, before.Status(w)))
	}

	affected, err := r.slots.UpdateCountTx(ctx, tx, mod, filter)
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to save slots: %w", err)
	}

	return affected == 1, nil
}
