package model

import (
	"jam/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCapacity    = "capacity"
	FieldHourlyRate  = "hourly_rate"
	FieldFeatures    = "features"
	FieldImageURL    = "image_url"
	FieldActive      = "active"
)

type Room struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Capacity    int             `db:"capacity"`
	HourlyRate  decimal.Decimal `db:"hourly_rate"`
	Features    pq.StringArray  `db:"features"`
	ImageURL    string          `db:"image_url"`
	Active      bool            `db:"active"`
	model.Metadata
}
