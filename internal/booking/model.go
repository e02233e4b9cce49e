package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotOwnerOrBooker = apperror.New(http.StatusForbidden, "user must be the item owner or the booking author")
	ErrNotItemOwner     = apperror.New(http.StatusForbidden, "user is not the owner of the item")
	ErrOwnerSelfBooking = apperror.New(http.StatusForbidden, "owner cannot book their own item")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrCrossDate        = apperror.New(http.StatusBadRequest, "booking end date must be after the start date")
	ErrStatusAlreadySet = apperror.New(http.StatusBadRequest, "booking has already been approved")
)

// Status is the persisted lifecycle value of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is the central entity: a time-bounded request by a booker to use an item.
// Item, booker and the [start, end) interval are fixed at creation; only Status changes.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}
