package dto

import (
	"roomslot/internal/domains/slot/model"
)

// SummaryResponse counts every window of every room by status for today.
type SummaryResponse struct {
	Date              string `json:"date"`
	Rooms             int    `json:"rooms"`
	Available         int    `json:"available"`
	Pending           int    `json:"pending"`
	Reserved          int    `json:"reserved"`
	Disabled          int    `json:"disabled"`
	Expired           int    `json:"expired"`
	DisabledOrExpired int    `json:"disabled_or_expired"`
}

func (s *SummaryResponse) Add(rs model.RoomSlots) {
	s.Rooms++

	for _, w := range model.Windows {
		switch rs.Status(w) {
		case model.StatusAvailable:
			s.Available++
		case model.StatusPending:
			s.Pending++
		case model.StatusReserved:
			s.Reserved++
		case model.StatusDisabled:
			s.Disabled++
		case model.StatusExpired:
			s.Expired++
		}
	}

	s.DisabledOrExpired = s.Disabled + s.Expired
}
