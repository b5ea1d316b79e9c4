package service

import (
	"context"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// NotificationListResult is the service-level DTO for paginated notifications.
type NotificationListResult struct {
	Items []model.Notification `json:"data"`
	Total int                  `json:"total"`
}

// NotificationService exposes the caller's notification feed. It is read-only.
type NotificationService interface {
	List(ctx context.Context, userID string, limit, offset int) (*NotificationListResult, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID string, limit, offset int) (*NotificationListResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	limit, offset = normalizePage(limit, offset)

	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: res.Items, Total: res.Total}, nil
}
