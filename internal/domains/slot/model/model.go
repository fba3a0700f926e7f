package model

import (
	"fmt"
	"time"

	"roomslot/shared/model"
)

const (
	TableName  = "slot_matrix"
	EntityName = "slot"

	FieldRoomID   = "room_id"
	FieldSlotDate = "slot_date"
)

// Status is the bookability of one window of one room on the matrix day.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusReserved  Status = "reserved"
	StatusDisabled  Status = "disabled"
	StatusExpired   Status = "expired"
)

var Statuses = []Status{StatusAvailable, StatusPending, StatusReserved, StatusDisabled, StatusExpired}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusReserved, StatusDisabled, StatusExpired:
		return true
	default:
		return false
	}
}

// Window is one of the four fixed daily booking windows, numbered from 1.
type Window int

const (
	Window0800 Window = iota + 1
	Window1000
	Window1300
	Window1500
)

var Windows = []Window{Window0800, Window1000, Window1300, Window1500}

type span struct {
	startHour, endHour int
	column             string
}

var spans = map[Window]span{
	Window0800: {startHour: 8, endHour: 10, column: "slot_1"},
	Window1000: {startHour: 10, endHour: 12, column: "slot_2"},
	Window1300: {startHour: 13, endHour: 15, column: "slot_3"},
	Window1500: {startHour: 15, endHour: 17, column: "slot_4"},
}

func (w Window) Valid() bool {
	_, ok := spans[w]

	return ok
}

func (w Window) InvalidReason() string {
	return "invalid_window"
}

// Column is the slot_matrix column holding this window. Only whitelisted names are returned.
func (w Window) Column() (string, error) {
	s, ok := spans[w]
	if !ok {
		return "", fmt.Errorf("unknown window %d", w)
	}

	return s.column, nil
}

// EndOn returns the instant the window closes on the calendar day of t.
func (w Window) EndOn(t time.Time) time.Time {
	s := spans[w]

	return time.Date(t.Year(), t.Month(), t.Day(), s.endHour, 0, 0, 0, t.Location())
}

func (w Window) Label() string {
	s, ok := spans[w]
	if !ok {
		return ""
	}

	return fmt.Sprintf("%02d:00 - %02d:00", s.startHour, s.endHour)
}

// ExpiryScope picks which statuses auto-expire once their window has ended.
type ExpiryScope string

const (
	// ExpireAvailable only closes slots nobody asked for.
	ExpireAvailable ExpiryScope = "available"
	// ExpireAll also closes pending and reserved slots, as the staff dashboard does.
	ExpireAll ExpiryScope = "all"
)

func ParseExpiryScope(value string) ExpiryScope {
	if ExpiryScope(value) == ExpireAll {
		return ExpireAll
	}

	return ExpireAvailable
}

func (e ExpiryScope) Covers(s Status) bool {
	switch s {
	case StatusAvailable:
		return true
	case StatusPending, StatusReserved:
		return e == ExpireAll
	default:
		return false
	}
}

// RoomSlots is the one slot_matrix row per room: the day it describes and the four window statuses.
type RoomSlots struct {
	RoomID   string     `db:"room_id"`
	SlotDate model.Date `db:"slot_date"`
	Slot1    Status     `db:"slot_1"`
	Slot2    Status     `db:"slot_2"`
	Slot3    Status     `db:"slot_3"`
	Slot4    Status     `db:"slot_4"`
}

func (r RoomSlots) Status(w Window) Status {
	switch w {
	case Window0800:
		return r.Slot1
	case Window1000:
		return r.Slot2
	case Window1300:
		return r.Slot3
	case Window1500:
		return r.Slot4
	default:
		return ""
	}
}

func (r *RoomSlots) SetStatus(w Window, s Status) {
	switch w {
	case Window0800:
		r.Slot1 = s
	case Window1000:
		r.Slot2 = s
	case Window1300:
		r.Slot3 = s
	case Window1500:
		r.Slot4 = s
	}
}

func (r RoomSlots) All(s Status) bool {
	for _, w := range Windows {
		if r.Status(w) != s {
			return false
		}
	}

	return true
}

func (r RoomSlots) Any(s Status) bool {
	for _, w := range Windows {
		if r.Status(w) == s {
			return true
		}
	}

	return false
}

func NewRoomSlots(roomID string, day model.Date) RoomSlots {
	return RoomSlots{
		RoomID:   roomID,
		SlotDate: day,
		Slot1:    StatusAvailable,
		Slot2:    StatusAvailable,
		Slot3:    StatusAvailable,
		Slot4:    StatusAvailable,
	}
}

// RoomSlotsView joins the room's display data onto its slot row.
type RoomSlotsView struct {
	RoomSlots
	Number   string `column:"number"   db:"room_number"   table:"rooms"`
	Floor    string `column:"floor"    db:"room_floor"    table:"rooms"`
	Capacity int    `column:"capacity" db:"room_capacity" table:"rooms"`
	Image    string `column:"image"    db:"room_image"    table:"rooms"`
}

func (RoomSlotsView) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = slot_matrix.room_id"
}

// RoomState summarises a room's row for staff.
type RoomState string

const (
	RoomStateEnabled  RoomState = "enabled"
	RoomStateDisabled RoomState = "disabled"
	RoomStateReserved RoomState = "reserved"
	RoomStatePending  RoomState = "pending"
)

// State is disabled when every window is, else reserved or pending when any window
// is, else enabled.
func (r RoomSlots) State() RoomState {
	switch {
	case r.All(StatusDisabled):
		return RoomStateDisabled
	case r.Any(StatusReserved):
		return RoomStateReserved
	case r.Any(StatusPending):
		return RoomStatePending
	default:
		return RoomStateEnabled
	}
}
