// Package policy derives a room's slot statuses from wall time. Every read path runs
// Apply before reporting or acting on a status, so there is no background job: the
// stored row simply catches up the next time someone looks at it.
package policy

import (
	"time"

	"roomslot/internal/domains/slot/model"
	gModel "roomslot/shared/model"
)

// Rollover starts a new day: when the row describes an earlier day every slot except
// Disabled becomes Available and the row moves to today.
func Rollover(today gModel.Date, rs model.RoomSlots) model.RoomSlots {
	if rs.SlotDate == today {
		return rs
	}

	for _, w := range model.Windows {
		if rs.Status(w) != model.StatusDisabled {
			rs.SetStatus(w, model.StatusAvailable)
		}
	}

	rs.SlotDate = today

	return rs
}

// Expire closes every window whose end time has been reached, limited to the
// statuses the scope covers. Disabled is never touched.
func Expire(now time.Time, rs model.RoomSlots, scope model.ExpiryScope) model.RoomSlots {
	for _, w := range model.Windows {
		if now.Before(w.EndOn(now)) {
			continue
		}

		if scope.Covers(rs.Status(w)) {
			rs.SetStatus(w, model.StatusExpired)
		}
	}

	return rs
}

// Apply runs Rollover for the day of now and then Expire. It reports whether the
// row changed, so callers only write back when needed. Applying it twice at the
// same instant is the same as applying it once.
func Apply(now time.Time, rs model.RoomSlots, scope model.ExpiryScope) (model.RoomSlots, bool) {
	next := Expire(now, Rollover(gModel.DateOf(now), rs), scope)

	return next, next != rs
}

// Enable turns Disabled windows back into Available. Callers run Apply afterwards
// so windows that already ended come back Expired.
func Enable(rs model.RoomSlots) model.RoomSlots {
	for _, w := range model.Windows {
		if rs.Status(w) == model.StatusDisabled {
			rs.SetStatus(w, model.StatusAvailable)
		}
	}

	return rs
}
