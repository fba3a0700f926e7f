package model

import (
	"time"

	"roomslot/shared/constant"
	"roomslot/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldLastLogin = "last_login"
	FieldActive    = "active"

	UniqueEmail = "users_email_key"
)

var Roles = []string{constant.RoleUser, constant.RoleStaff, constant.RoleApprover}

var roleNames = map[string]string{
	constant.RoleUser:     "User",
	constant.RoleStaff:    "Staff",
	constant.RoleApprover: "Approver",
}

// RoleName is the display name of a role, or the role itself when unknown.
func RoleName(role string) string {
	if name, ok := roleNames[role]; ok {
		return name
	}

	return role
}

type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	FullName  string     `db:"full_name"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}
