package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"roomslot/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleUser, constant.RoleStaff, constant.RoleApprover}

// Permission is one route of the table. An empty Permissions list admits every
// authenticated role; Skip makes the route public.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks a chi route pattern up. The second result is false for
// routes the table does not list.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	permission, ok := r.index[routeKey(method, path)]

	return permission, ok
}

func parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, err
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := permissions.index[key]; dup {
			log.Warn().Str("route", key).Msg("duplicate permission entry, keeping the first")

			continue
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				log.Warn().Str("route", key).Str("role", role).Msg("permission entry names an unknown role")
			}
		}

		permissions.index[key] = endpoint
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.index)).Msg("Successfully loaded embedded permissions")

	return permissions
}
