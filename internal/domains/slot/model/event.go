package model

import "time"

const EventRoomStatusChanged = "room.status_changed"

// StatusChangedEvent is published after a staff member enables or disables a room.
type StatusChangedEvent struct {
	RoomID    string    `json:"room_id"`
	Action    string    `json:"action"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}
