package itemrequest

import (
	"context"
	"strings"

	"github.com/nekogravitycat/item-sharing-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requestorID, description string) (*ItemRequest, error)
	GetByID(ctx context.Context, actorID, requestID string) (*ItemRequest, error)
	ListOwn(ctx context.Context, actorID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, actorID string, from, size int) ([]*ItemRequest, error)
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

func (s *service) Create(ctx context.Context, requestorID, description string) (*ItemRequest, error) {
	requestor, err := s.userService.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: strings.TrimSpace(description),
		RequestorID: requestor.ID,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, actorID, requestID string) (*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, requestID)
}

func (s *service) ListOwn(ctx context.Context, actorID string) ([]*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.ListByRequestor(ctx, actorID)
}

func (s *service) ListOthers(ctx context.Context, actorID string, from, size int) ([]*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.ListOthers(ctx, actorID, from, size)
}
