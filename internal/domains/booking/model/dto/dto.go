package dto

import (
	"atrium/internal/domains/booking/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID      string `json:"room_id"     validate:"required"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty"`
	StartTime   string `json:"start_time"  validate:"required"`
	EndTime     string `json:"end_time"    validate:"required"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending confirmed cancelled"`
}

func (c *CreateBookingRequest) ToModel(userID string) (model.Booking, error) {
	startTime, err := timezone.ParseTimestamp(c.StartTime)
	if err != nil {
		return model.Booking{}, err
	}

	endTime, err := timezone.ParseTimestamp(c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		UserID:      userID,
		Title:       c.Title,
		Description: c.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

type UpdateBookingRequest struct {
	RoomID      string `db:"room_id"     json:"room_id"     validate:"omitempty"`
	Title       string `db:"title"       json:"title"       validate:"omitempty,max=200"`
	Description string `db:"description" json:"description" validate:"omitempty"`
	StartTime   string `json:"start_time"                   validate:"omitempty"`
	EndTime     string `json:"end_time"                     validate:"omitempty"`
	Status      string `db:"status"      json:"status"      validate:"omitempty,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.UserID = model.UserID
	r.Title = model.Title
	r.Description = model.Description
	r.StartTime = timezone.Format(model.StartTime, constant.TimestampFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.TimestampFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

