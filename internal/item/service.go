package item

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/user"
)

// CreateInput holds the values for listing a new item.
type CreateInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateInput holds a partial item update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, in CreateInput) (*Item, error)
	Update(ctx context.Context, actorID, itemID string, in UpdateInput) (*Item, error)
	Delete(ctx context.Context, actorID, itemID string) error

	// GetByID returns the bare entity; GetView enriches it for display.
	GetByID(ctx context.Context, id string) (*Item, error)
	GetView(ctx context.Context, actorID, itemID string) (*View, error)
	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*View, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)

	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	AddComment(ctx context.Context, actorID, itemID, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, in CreateInput) (*Item, error) {
	owner, err := s.userService.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	it := &Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		RequestID:   in.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, actorID, itemID string, in UpdateInput) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if in.Name != nil {
		it.Name = *in.Name
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, actorID, itemID string) error {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it.OwnerID != actorID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, itemID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetView(ctx context.Context, actorID, itemID string) (*View, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, it, actorID, time.Now().UTC())
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*View, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}

	// Bucket every item of the page against the same instant.
	now := time.Now().UTC()

	views := make([]*View, 0, len(items))
	for _, it := range items {
		v, err := s.buildView(ctx, it, ownerID, now)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// buildView attaches comments, and the neighbouring approved bookings when the
// viewer is the owner. Booking details of an item are nobody else's business.
func (s *service) buildView(ctx context.Context, it *Item, actorID string, now time.Time) (*View, error) {
	v := &View{Item: *it}

	comments, err := s.repo.CommentsByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	v.Comments = comments

	if it.OwnerID != actorID {
		return v, nil
	}

	if v.LastBooking, err = s.repo.LastBooking(ctx, it.ID, now); err != nil {
		return nil, err
	}
	if v.NextBooking, err = s.repo.NextBooking(ctx, it.ID, now); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, from, size)
}

func (s *service) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	return s.repo.IDsByOwner(ctx, ownerID)
}

func (s *service) AddComment(ctx context.Context, actorID, itemID, text string) (*Comment, error) {
	author, err := s.userService.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.HasFinishedBooking(ctx, it.ID, author.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
