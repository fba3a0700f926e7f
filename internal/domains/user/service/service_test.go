package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomslot/config"
	otelMocks "roomslot/infras/otel/mocks"
	userMocks "roomslot/internal/domains/user/mocks"
	"roomslot/internal/domains/user/model"
	"roomslot/internal/domains/user/model/dto"
	"roomslot/internal/domains/user/service"
	cacheMocks "roomslot/shared/cache/mocks"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
)

func setup(t *testing.T) (*userMocks.MockUserRepository, *cacheMocks.MockRedisCache, service.User) {
	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUserRepository(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, cache, service.New(repo, cfg, cache, otelMocks.NewOtel())
}

var staff = context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{Email: "Approver@Example.com", Password: "password123", FullName: "Rina", Role: constant.RoleApprover}

	t.Run("staff creates approver", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().EmailTaken(gomock.Any(), "approver@example.com").Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, "approver@example.com", user.Email)
				assert.Equal(t, constant.RoleApprover, user.Role)
				assert.Equal(t, "staff-1", user.CreatedBy)

				return nil
			})

		id, err := svc.Create(staff, req)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("role defaults to user", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().EmailTaken(gomock.Any(), "approver@example.com").Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, constant.RoleUser, user.Role)

				return nil
			})

		noRole := req
		noRole.Role = constant.Empty

		_, err := svc.Create(staff, noRole)
		assert.NoError(t, err)
	})

	t.Run("email taken", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().EmailTaken(gomock.Any(), "approver@example.com").Return(true, nil)

		_, err := svc.Create(staff, req)
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("email claimed between check and insert", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: "23505", Constraint: model.UniqueEmail})

		_, err := svc.Create(staff, req)
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("insert error", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().EmailTaken(gomock.Any(), "approver@example.com").Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Create(staff, req)
		assert.Error(t, err)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		_, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), "user:get:u-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				value.(*dto.UserResponse).ID = "u-1"

				return nil
			})

		res, err := svc.Get(staff, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", res.ID)
	})

	t.Run("loads with role name", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		repo.EXPECT().GetByID(gomock.Any(), "u-1").
			Return(model.User{ID: "u-1", Email: "a@b.c", Role: constant.RoleApprover, FullName: "Rina"}, nil)

		res, err := svc.Get(staff, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "Approver", res.RoleName)
		assert.Nil(t, res.LastLogin)
	})

	t.Run("not found", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(model.User{}, nil)

		_, err := svc.Get(staff, "missing")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestUserService_GetAll(t *testing.T) {
	repo, cache, svc := setup(t)

	params := gDto.QueryParams{Page: 1, Limit: 2}

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	repo.EXPECT().List(gomock.Any(), params, gomock.Any()).
		Return([]model.User{{ID: "u-1"}, {ID: "u-2"}}, 3, nil)

	res, err := svc.GetAll(staff, params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Users, 2)
}

func TestUserService_Update(t *testing.T) {
	role := constant.RoleStaff

	t.Run("updates role", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().UpdateByID(gomock.Any(), "u-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, constant.RoleStaff, fields[model.FieldRole])
				assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

				return true, nil
			})

		assert.NoError(t, svc.Update(staff, dto.UpdateUserRequest{Role: &role}, "u-1"))
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, _, svc := setup(t)

		assert.ErrorIs(t, svc.Update(staff, dto.UpdateUserRequest{}, "u-1"), service.ErrNothingToSet)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().UpdateByID(gomock.Any(), "u-9", gomock.Any()).Return(false, nil)

		assert.ErrorIs(t, svc.Update(staff, dto.UpdateUserRequest{Role: &role}, "u-9"), service.ErrNotFound)
	})
}
