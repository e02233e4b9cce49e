package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/item"
	"github.com/nekogravitycat/item-sharing-backend/internal/user"
)

// CreateRequest carries the values needed to open a booking.
type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// Service implements the booking lifecycle: reads gated by CanView, listings
// classified by state filter, creation gated by CanCreate, and the
// WAITING -> APPROVED/REJECTED transition gated by CanApprove.
type Service interface {
	GetByID(ctx context.Context, actorID, bookingID string) (*Booking, error)
	ListByBooker(ctx context.Context, actorID, state string, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, actorID, state string, from, size int) ([]*Booking, error)
	Create(ctx context.Context, actorID string, req CreateRequest) (*Booking, error)
	ChangeStatus(ctx context.Context, actorID, bookingID string, approve bool) (*Booking, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
}

func NewService(repo Repository, userService user.Service, itemService item.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
	}
}

func (s *service) GetByID(ctx context.Context, actorID, bookingID string) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := CanView(actorID, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, actorID, state string, from, size int) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	q, err := BuildQuery(Scope{BookerID: actorID}, filter, time.Now().UTC(), from, size)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}

func (s *service) ListByOwner(ctx context.Context, actorID, state string, from, size int) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	itemIDs, err := s.itemService.IDsByOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}
	// Owning no items means owning no bookings; skip the store round-trip.
	if len(itemIDs) == 0 {
		return []*Booking{}, nil
	}

	q, err := BuildQuery(Scope{ItemIDs: itemIDs}, filter, time.Now().UTC(), from, size)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}

func (s *service) Create(ctx context.Context, actorID string, req CreateRequest) (*Booking, error) {
	booker, err := s.userService.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	it, err := s.itemService.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !req.Start.Before(req.End) {
		return nil, ErrCrossDate
	}

	if err := CanCreate(actorID, it); err != nil {
		return nil, err
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ChangeStatus(ctx context.Context, actorID, bookingID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := NextStatus(b.Status, approve)
	if err != nil {
		return nil, err
	}

	if err := CanApprove(actorID, b); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, next); err != nil {
		return nil, err
	}

	b.Status = next
	return b, nil
}
