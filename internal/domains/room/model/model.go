package model

import "atrium/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldCapacity    = "capacity"
	FieldLocation    = "location"
	FieldDescription = "description"
	FieldImage       = "image"
)

type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Capacity    int    `db:"capacity"`
	Location    string `db:"location"`
	Description string `db:"description"`
	Image       string `db:"image"`
	model.Metadata
}
