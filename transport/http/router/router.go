package router

import (
	"net/http"
	"sort"
	"strings"

	"roomslot/internal/handlers/auth"
	"roomslot/internal/handlers/booking"
	"roomslot/internal/handlers/dashboard"
	"roomslot/internal/handlers/room"
	"roomslot/internal/handlers/user"
	"roomslot/permissions"

	"github.com/go-chi/chi/v5"
)

const apiPrefix = "/v1"

// Mounter is a handler that registers its routes on the versioned API group.
type Mounter interface {
	Router(router chi.Router)
}

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Room      room.Handler
	Booking   booking.Handler
	Dashboard dashboard.Handler
}

func (d *DomainHandlers) mounters() []Mounter {
	return []Mounter{&d.Auth, &d.User, &d.Room, &d.Booking, &d.Dashboard}
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(apiPrefix, func(v1 chi.Router) {
		for _, m := range r.DomainHandlers.mounters() {
			m.Router(v1)
		}
	})
}

// Unguarded lists "METHOD /pattern" for every registered route the permission table
// does not cover. Such routes answer 403 to every token holder.
func Unguarded(routes chi.Routes, table *permissions.PermissionData) []string {
	var missing []string

	_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, apiPrefix) {
			return nil
		}

		if table != nil {
			if _, ok := table.FindPermissions(route, method); ok {
				return nil
			}
		}

		missing = append(missing, method+" "+route)

		return nil
	})

	sort.Strings(missing)

	return missing
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
