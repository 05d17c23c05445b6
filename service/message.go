package service

import (
	"context"

	"braincontrol/model"
)

const DefaultMessageLimit = 20

// MessageStore reads group threads.
type MessageStore interface {
	ListGroupMessages(ctx context.Context, groupID string, limit int) ([]model.MessageView, error)
}

// MessagesInput selects a page of a group's thread. A nil Limit means
// DefaultMessageLimit.
type MessagesInput struct {
	ID    string
	Limit *int
}

// MessageService backs the getMessages procedure of both the agents and the
// groups namespaces.
type MessageService struct {
	store MessageStore
}

func NewMessageService(store MessageStore) *MessageService {
	return &MessageService{store: store}
}

// GetMessages returns up to Limit messages of the group, newest first.
// Unknown groups give an empty slice, not an error.
func (s *MessageService) GetMessages(ctx context.Context, in MessagesInput) ([]model.MessageView, error) {
	if in.ID == "" {
		return nil, NewValidationError("id is required", nil)
	}
	limit := DefaultMessageLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	if limit < 1 {
		return nil, NewValidationError("limit must be a positive integer", nil)
	}

	messages, err := s.store.ListGroupMessages(ctx, in.ID, limit)
	if err != nil {
		return nil, storeError("get messages", err)
	}
	if messages == nil {
		messages = []model.MessageView{}
	}
	return messages, nil
}
