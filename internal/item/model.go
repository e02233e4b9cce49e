package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner          = apperror.New(http.StatusForbidden, "user is not the owner of the item")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest, "user has never completed a booking of the item")
)

// Item is something a user offers for sharing. Available gates bookability;
// OwnerID gates who may approve bookings and edit the listing.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	OwnerName   string
	RequestID   *string // set when the item was listed in answer to an item request
	CreatedAt   time.Time
}

// BookingRef is the slim booking projection shown to an item's owner.
type BookingRef struct {
	ID       string
	BookerID string
}

// Comment is feedback left by a user who actually booked the item.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// View is an item enriched for display: comments for everyone, the closest
// past and upcoming approved bookings for the owner only.
type View struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}
