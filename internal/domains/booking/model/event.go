package model

import (
	"time"

	slotModel "roomslot/internal/domains/slot/model"
	"roomslot/shared/model"
)

const (
	EventBookingCreated  = "booking.created"
	EventBookingResolved = "booking.resolved"
)

type Event struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	RoomID     string           `json:"room_id"`
	Window     slotModel.Window `json:"window"`
	RoomDate   model.Date       `json:"room_date"`
	Status     Status           `json:"status"`
	ApproverID *string          `json:"approver_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewEvent(b Booking, at time.Time) Event {
	return Event{
		ID:         b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		Window:     b.Window,
		RoomDate:   b.RoomDate,
		Status:     b.Status,
		ApproverID: b.ApproverID,
		OccurredAt: at,
	}
}
