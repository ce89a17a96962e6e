package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/access"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/events"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
	"go.uber.org/zap"
)

type MessageService struct {
	messages repository.MessageRepository
	guard    *access.Guard
	hub      *events.Hub
	logger   *zap.Logger
	now      func() time.Time
}

func NewMessageService(messages repository.MessageRepository, guard *access.Guard, hub *events.Hub, logger *zap.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		guard:    guard,
		hub:      hub,
		logger:   logger,
		now:      time.Now,
	}
}

// Send appends a message to the caller↔recipient conversation. Only
// connected pairs may message; content that is blank after trimming is
// rejected, but accepted content is stored verbatim.
func (s *MessageService) Send(ctx context.Context, caller, recipient uuid.UUID, content string) (*models.Message, error) {
	if err := s.guard.RequireConnection(ctx, caller, recipient); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyContent
	}

	msg, err := s.messages.Append(ctx, caller, recipient, content, s.now())
	if err != nil {
		return nil, err
	}
	s.hub.Publish(recipient, events.TypeMessageNew, msg)
	return msg, nil
}

// List returns the conversation with other, oldest first. Access is
// symmetric: either connected party may read the whole log. before and
// limit are the optional pagination window; zero values mean everything.
func (s *MessageService) List(ctx context.Context, caller, other uuid.UUID, before int64, limit int) ([]models.Message, error) {
	if err := s.guard.RequireConnection(ctx, caller, other); err != nil {
		return nil, err
	}
	return s.messages.List(ctx, caller, other, before, limit)
}
