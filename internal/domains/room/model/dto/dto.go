package dto

import (
	"mime/multipart"

	"jam/internal/domains/room/model"
	"jam/shared"
	gDto "jam/shared/dto"
	gModel "jam/shared/model"
	"jam/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Description string                `json:"description" validate:"omitempty,max=500"`
	Capacity    int                   `json:"capacity"    validate:"omitempty,min=0"`
	HourlyRate  string                `json:"hourly_rate" validate:"required"`
	Features    []string              `json:"features"    validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) Rate() (decimal.Decimal, error) {
	return decimal.NewFromString(c.HourlyRate) //nolint:wrapcheck
}

func (c *CreateRoomRequest) ToModel(user, imageURL string, rate decimal.Decimal) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Capacity:    c.Capacity,
		HourlyRate:  rate,
		Features:    pq.StringArray(c.Features),
		ImageURL:    imageURL,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=500"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=0"`
	HourlyRate  string                `json:"hourly_rate"                  validate:"omitempty"`
	Features    []string              `json:"features"                     validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"image"                        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	HourlyRate  string   `json:"hourly_rate"`
	Features    []string `json:"features"`
	ImageURL    string   `json:"image_url"`
	Active      bool     `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Capacity = model.Capacity
	r.HourlyRate = model.HourlyRate.StringFixed(2)
	r.Features = model.Features
	r.ImageURL = model.ImageURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
