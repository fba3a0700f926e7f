package dto

import (
	"roomslot/internal/domains/slot/model"
)

type Action string

const (
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
)

func (a Action) Valid() bool {
	return a == ActionEnable || a == ActionDisable
}

type UpdateRoomStatusRequest struct {
	Action Action `json:"action" validate:"required,enum"`
}

type SlotResponse struct {
	Window int          `json:"window"`
	Label  string       `json:"label"`
	Status model.Status `json:"status"`
}

type RoomSlotsResponse struct {
	RoomID   string         `json:"room_id"`
	Number   string         `json:"number"`
	Floor    string         `json:"floor"`
	Capacity int            `json:"capacity"`
	Image    string         `json:"image"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

func (r *RoomSlotsResponse) FromModel(view model.RoomSlotsView) {
	r.RoomID = view.RoomID
	r.Number = view.Number
	r.Floor = view.Floor
	r.Capacity = view.Capacity
	r.Image = view.Image
	r.Date = view.SlotDate.String()

	r.Slots = make([]SlotResponse, len(model.Windows))
	for i, w := range model.Windows {
		r.Slots[i] = SlotResponse{Window: int(w), Label: w.Label(), Status: view.Status(w)}
	}
}

type GetRoomSlotsResponse struct {
	Date  string              `json:"date"`
	Rooms []RoomSlotsResponse `json:"rooms"`
}

func (r *GetRoomSlotsResponse) FromModels(date string, views []model.RoomSlotsView) {
	r.Date = date

	r.Rooms = make([]RoomSlotsResponse, len(views))
	for i, view := range views {
		r.Rooms[i].FromModel(view)
	}
}

type StaffRoomResponse struct {
	RoomSlotsResponse
	State model.RoomState `json:"state"`
}

type GetStaffRoomsResponse struct {
	Date  string              `json:"date"`
	Rooms []StaffRoomResponse `json:"rooms"`
}

func (r *GetStaffRoomsResponse) FromModels(date string, views []model.RoomSlotsView) {
	r.Date = date

	r.Rooms = make([]StaffRoomResponse, len(views))
	for i, view := range views {
		r.Rooms[i].FromModel(view)
		r.Rooms[i].State = view.State()
	}
}
