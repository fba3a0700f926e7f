package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=User=MockUserRepository

import (
	"context"
	"fmt"
	"strings"

	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/internal/domains/user/model"
	"roomslot/shared"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	gRepo "roomslot/shared/repository"
)

// User is the identity store. Emails are compared lower-cased.
type User interface {
	Insert(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.User, int, error)
	UpdateByID(ctx context.Context, id string, mod map[string]any) (bool, error)
}

type repositoryImpl struct {
	users gRepo.Repository[model.User]
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		users: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:  otel,
	}
}

func byEmail(email string) gDto.FilterGroup {
	return shared.FilterByID(strings.ToLower(strings.TrimSpace(email)), model.FieldEmail, model.TableName)
}

func (r *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	return r.users.Insert(ctx, user) //nolint:wrapcheck
}

// GetByID returns a zero User when nothing matches.
func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.users.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// GetByEmail returns a zero User when nothing matches.
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.users.Get(ctx, byEmail(email)) //nolint:wrapcheck
}

func (r *repositoryImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.users.Exist(ctx, byEmail(email)) //nolint:wrapcheck
}

// List returns one page of users and the number of users matching filter.
func (r *repositoryImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.User, int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.List")
	defer scope.End()

	total, err := r.users.Count(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if total == 0 {
		return []model.User{}, 0, nil
	}

	users, err := r.users.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// UpdateByID reports false when no user has the id.
func (r *repositoryImpl) UpdateByID(ctx context.Context, id string, mod map[string]any) (bool, error) {
	affected, err := r.users.UpdateCount(ctx, mod, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}
