package model

import "roomslot/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldFloor    = "floor"
	FieldCapacity = "capacity"
	FieldImage    = "image"

	// UniqueFloorNumber keeps room numbers unique within a floor.
	UniqueFloorNumber = "rooms_floor_number_key"
)

type Room struct {
	ID       string `db:"id"`
	Number   string `db:"number"`
	Floor    string `db:"floor"`
	Capacity int    `db:"capacity"`
	Image    string `db:"image"`
	model.Metadata
}
