package dto

import (
	"strings"
	"time"

	"roomslot/internal/domains/user/model"
	"roomslot/shared"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	gModel "roomslot/shared/model"
	"roomslot/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email,max=100"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,notblank,max=100"`
	Role     string `json:"role"      validate:"omitempty,oneof=user staff approver"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string, now time.Time) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(r.Email),
		Password: hashedPassword,
		Role:     role,
		FullName: strings.TrimSpace(r.FullName),
		Active:   true,
		Metadata: gModel.NewMetadata(username, now),
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	RoleName  string  `json:"role_name"`
	FullName  string  `json:"full_name"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Audit
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role
	r.RoleName = model.RoleName(user.Role)
	r.FullName = user.FullName
	r.Active = user.Active
	r.Audit = gDto.NewAudit(user.Metadata)

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

// UpdateUserRequest is used by staff to change another account.
type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,notblank,max=100"`
	Role     *string `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=user staff approver"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
