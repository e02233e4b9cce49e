package http

import (
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/booking"
	itemHttp "github.com/nekogravitycat/item-sharing-backend/internal/item/http"
	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/request"
	userHttp "github.com/nekogravitycat/item-sharing-backend/internal/user/http"
)

type CreateBookingRequest struct {
	ItemID string    `json:"itemId" binding:"required,uuid"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// Validate rejects inverted intervals before the service is involved.
// The service re-checks; this keeps obviously broken input off the wire path.
func (r *CreateBookingRequest) Validate() error {
	if !r.Start.Before(r.End) {
		return booking.ErrCrossDate
	}
	return nil
}

// ListBookingsRequest defines query parameters for the booking listings.
// State is passed through as a raw literal; the service classifies it.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state,default=ALL"`
}

type ChangeStatusRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

type BookingResponse struct {
	ID     string           `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Booker userHttp.UserTag `json:"booker"`
	Item   itemHttp.ItemTag `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}
