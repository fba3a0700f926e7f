package model

import (
	"time"

	slotModel "roomslot/internal/domains/slot/model"
	"roomslot/shared/model"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldRoomID          = "room_id"
	FieldWindow          = "slot_window"
	FieldReason          = "reason"
	FieldRoomDate        = "room_date"
	FieldStatus          = "status"
	FieldApproverID      = "approver_id"
	FieldApproverComment = "approver_comment"
	FieldResolvedAt      = "resolved_at"

	// UniqueUserDay backs the one-booking-per-user-per-day rule.
	UniqueUserDay = "room_bookings_user_id_room_date_key"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Booking is a request for one window of one room on the day it was made. It is
// resolved at most once.
type Booking struct {
	ID              string           `db:"id"`
	UserID          string           `db:"user_id"`
	RoomID          string           `db:"room_id"`
	Window          slotModel.Window `db:"slot_window"`
	Reason          string           `db:"reason"`
	RoomDate        model.Date       `db:"room_date"`
	Status          Status           `db:"status"`
	ApproverID      *string          `db:"approver_id"`
	ApproverComment *string          `db:"approver_comment"`
	ResolvedAt      *time.Time       `db:"resolved_at"`
	model.Metadata
}

// BookingView adds the room and the people involved for history listings.
type BookingView struct {
	Booking
	RoomNumber   string  `column:"number"    db:"room_number"   table:"rooms"`
	RoomFloor    string  `column:"floor"     db:"room_floor"    table:"rooms"`
	UserName     string  `column:"full_name" db:"user_name"     table:"users"`
	UserEmail    string  `column:"email"     db:"user_email"    table:"users"`
	ApproverName *string `column:"full_name" db:"approver_name" table:"approver"`
}

func (BookingView) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = room_bookings.room_id " +
		"JOIN users ON users.id = room_bookings.user_id " +
		"LEFT JOIN users approver ON approver.id = room_bookings.approver_id"
}
