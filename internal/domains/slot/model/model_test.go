package model_test

import (
	"testing"
	"time"

	"roomslot/internal/domains/slot/model"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		window model.Window
		valid  bool
		label  string
		column string
		endsAt int
	}{
		{window: model.Window0800, valid: true, label: "08:00 - 10:00", column: "slot_1", endsAt: 10},
		{window: model.Window1000, valid: true, label: "10:00 - 12:00", column: "slot_2", endsAt: 12},
		{window: model.Window1300, valid: true, label: "13:00 - 15:00", column: "slot_3", endsAt: 15},
		{window: model.Window1500, valid: true, label: "15:00 - 17:00", column: "slot_4", endsAt: 17},
		{window: 0},
		{window: 5},
	}

	day := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.window.Valid())
			assert.Equal(t, tt.label, tt.window.Label())

			column, err := tt.window.Column()
			if !tt.valid {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, time.Date(2024, 6, 10, tt.endsAt, 0, 0, 0, time.UTC), tt.window.EndOn(day))
		})
	}
}

func TestParseExpiryScope(t *testing.T) {
	assert.Equal(t, model.ExpireAll, model.ParseExpiryScope("all"))
	assert.Equal(t, model.ExpireAvailable, model.ParseExpiryScope("available"))
	assert.Equal(t, model.ExpireAvailable, model.ParseExpiryScope(""))
	assert.Equal(t, model.ExpireAvailable, model.ParseExpiryScope("everything"))
}

func TestExpiryScope_Covers(t *testing.T) {
	for _, s := range model.Statuses {
		assert.Equal(t, s == model.StatusAvailable, model.ExpireAvailable.Covers(s), s)
	}

	assert.True(t, model.ExpireAll.Covers(model.StatusAvailable))
	assert.True(t, model.ExpireAll.Covers(model.StatusPending))
	assert.True(t, model.ExpireAll.Covers(model.StatusReserved))
	assert.False(t, model.ExpireAll.Covers(model.StatusDisabled))
	assert.False(t, model.ExpireAll.Covers(model.StatusExpired))
}

func TestRoomSlots_SetStatus(t *testing.T) {
	rs := model.NewRoomSlots("room-101", "2024-06-10")
	assert.True(t, rs.All(model.StatusAvailable))

	rs.SetStatus(model.Window1300, model.StatusPending)
	rs.SetStatus(9, model.StatusReserved)

	assert.Equal(t, model.StatusPending, rs.Slot3)
	assert.Equal(t, model.StatusPending, rs.Status(model.Window1300))
	assert.Equal(t, model.Status(""), rs.Status(9))
	assert.False(t, rs.Any(model.StatusReserved))
}

func TestRoomSlots_State(t *testing.T) {
	tests := []struct {
		name     string
		slots    [4]model.Status
		expected model.RoomState
	}{
		{name: "all available", slots: [4]model.Status{"available", "available", "available", "available"}, expected: model.RoomStateEnabled},
		{name: "all disabled", slots: [4]model.Status{"disabled", "disabled", "disabled", "disabled"}, expected: model.RoomStateDisabled},
		{name: "one disabled", slots: [4]model.Status{"disabled", "available", "expired", "available"}, expected: model.RoomStateEnabled},
		{name: "reserved wins over pending", slots: [4]model.Status{"pending", "reserved", "available", "available"}, expected: model.RoomStateReserved},
		{name: "pending", slots: [4]model.Status{"expired", "pending", "available", "available"}, expected: model.RoomStatePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := model.RoomSlots{Slot1: tt.slots[0], Slot2: tt.slots[1], Slot3: tt.slots[2], Slot4: tt.slots[3]}

			assert.Equal(t, tt.expected, rs.State())
		})
	}
}
