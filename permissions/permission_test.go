package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomslot/shared/constant"
)

func TestGet(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		found  bool
		roles  []string
		skip   bool
	}{
		{name: "login is public", path: "/v1/auth/login", method: "POST", found: true, skip: true},
		{name: "only approvers resolve", path: "/v1/bookings/{id}/resolution", method: "PUT", found: true, roles: []string{constant.RoleApprover}},
		{name: "only users book", path: "/v1/bookings/", method: "POST", found: true, roles: []string{constant.RoleUser}},
		{name: "staff toggle rooms", path: "/v1/rooms/{id}/status", method: "PUT", found: true, roles: []string{constant.RoleStaff}},
		{name: "any role reads rooms", path: "/v1/rooms/", method: "GET", found: true, roles: []string{}},
		{name: "method is case insensitive", path: "/v1/dashboard/summary", method: "get", found: true, roles: []string{constant.RoleStaff, constant.RoleApprover}},
		{name: "unknown route", path: "/v1/nothing", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission, found := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.roles, permission.Permissions)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	approverOnly := Permission{Permissions: []string{constant.RoleApprover}}
	anyRole := Permission{Permissions: []string{}}
	public := Permission{Skip: true, Permissions: []string{constant.RoleStaff}}

	assert.True(t, approverOnly.Allows(constant.RoleApprover))
	assert.False(t, approverOnly.Allows(constant.RoleUser))
	assert.False(t, approverOnly.Allows(""))
	assert.True(t, anyRole.Allows(constant.RoleUser))
	assert.True(t, public.Allows(""))
}

func TestParse(t *testing.T) {
	raw := []byte(`{"endpoints": [
		{"path": "/v1/rooms/", "method": "GET", "permissions": ["staff"]},
		{"path": "/v1/rooms/", "method": "GET", "permissions": ["user"]},
		{"path": "/v1/dashboard/summary", "method": "GET", "permissions": ["janitor"]}
	]}`)

	data, err := parse(raw)
	require.NoError(t, err)

	first, found := data.FindPermissions("/v1/rooms/", "GET")
	assert.True(t, found)
	assert.Equal(t, []string{constant.RoleStaff}, first.Permissions)

	_, found = data.FindPermissions("/v1/dashboard/summary", "GET")
	assert.True(t, found)

	_, err = parse([]byte(`{"endpoints": [`))
	assert.Error(t, err)
}
