package http

import (
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type ItemRequestResponse struct {
	ID          string                    `json:"id"`
	Description string                    `json:"description"`
	Created     time.Time                 `json:"created"`
	Items       []itemrequest.OfferedItem `json:"items"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	items := req.Items
	if items == nil {
		items = []itemrequest.OfferedItem{}
	}

	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.CreatedAt,
		Items:       items,
	}
}
