package itemrequest

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "item request not found")

// ItemRequest is a wish for an item that does not exist on the marketplace yet.
// Items lists what other users have offered against it so far.
type ItemRequest struct {
	ID          string
	Description string
	RequestorID string
	CreatedAt   time.Time
	Items       []OfferedItem
}

// OfferedItem is an item listed in answer to a request.
type OfferedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     string `json:"ownerId"`
}
