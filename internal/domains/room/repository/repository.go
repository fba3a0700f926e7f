package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=Room=MockRoomRepository

import (
	"context"
	"strings"

	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/internal/domains/room/model"
	"roomslot/shared"
	gRepo "roomslot/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Room is the room inventory. Rooms are never deleted; their slot rows live in the
// slot matrix.
type Room interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, room model.Room) error
	GetByID(ctx context.Context, id string) (model.Room, error)
	UpdateByID(ctx context.Context, id string, mod map[string]any) (bool, error)
}

type repositoryImpl struct {
	rooms gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		rooms: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// InsertTx runs on the caller's transaction so the room and its slot row commit together.
func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, room model.Room) error {
	room.Number = strings.TrimSpace(room.Number)
	room.Floor = strings.TrimSpace(room.Floor)

	return r.rooms.InsertTx(ctx, tx, room) //nolint:wrapcheck
}

// GetByID returns a zero Room when nothing matches.
func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Room, error) {
	return r.rooms.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// UpdateByID reports false when no room has the id. A number clash within the floor
// surfaces as a unique violation on model.UniqueFloorNumber.
func (r *repositoryImpl) UpdateByID(ctx context.Context, id string, mod map[string]any) (bool, error) {
	affected, err := r.rooms.UpdateCount(ctx, mod, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}
