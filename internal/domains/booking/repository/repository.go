package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=Booking=MockBookingRepository

import (
	"context"
	"fmt"
	"time"

	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/internal/domains/booking/model"
	"roomslot/shared"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	gModel "roomslot/shared/model"
	gRepo "roomslot/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	ExistForDayTx(ctx context.Context, tx *sqlx.Tx, userID string, day gModel.Date) (bool, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error)
	ResolveTx(ctx context.Context, tx *sqlx.Tx, id string, status model.Status, approverID string, comment *string, at time.Time) (bool, error)
	Get(ctx context.Context, id string) (model.BookingView, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingView, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	bookings gRepo.Repository[model.Booking]
	views    gRepo.Repository[model.BookingView]
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		bookings: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		views:    gRepo.NewRepository[model.BookingView](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:     otel,
	}
}

func (r *repositoryImpl) ExistForDayTx(ctx context.Context, tx *sqlx.Tx, userID string, day gModel.Date) (bool, error) {
	filter := gDto.And(
		gDto.Eq(model.TableName, model.FieldUserID, userID),
		gDto.Eq(model.TableName, model.FieldRoomDate, day),
	)

	return r.bookings.ExistTx(ctx, tx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	return r.bookings.InsertTx(ctx, tx, booking) //nolint:wrapcheck
}

func (r *repositoryImpl) GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	return r.bookings.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// ResolveTx moves a pending booking to its final status. It reports false when the
// booking was no longer pending, which is how a second resolution loses.
func (r *repositoryImpl) ResolveTx(ctx context.Context, tx *sqlx.Tx, id string, status model.Status, approverID string, comment *string, at time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ResolveTx")
	defer scope.End()

	mod := map[string]any{
		model.FieldStatus:          status,
		model.FieldApproverID:      approverID,
		model.FieldApproverComment: comment,
		model.FieldResolvedAt:      at,
		constant.FieldModifiedAt:   at,
		constant.FieldModifiedBy:   approverID,
	}

	filter := gDto.And(
		gDto.Eq(model.TableName, model.FieldID, id),
		gDto.Guard("expected", model.TableName, model.FieldStatus, model.StatusPending),
	)

	affected, err := r.bookings.UpdateCountTx(ctx, tx, mod, filter)
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to resolve booking: %w", err)
	}

	return affected == 1, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.BookingView, error) {
	return r.views.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingView, error) {
	return r.views.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.views.Count(ctx, filter) //nolint:wrapcheck
}
