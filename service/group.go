package service

import (
	"context"

	"braincontrol/model"
)

type GroupStore interface {
	ListGroups(ctx context.Context) ([]model.Group, error)
}

type ConnectorRef struct {
	Name string `json:"name"`
}

type Group struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Connector   ConnectorRef `json:"connector"`
}

type GroupService struct {
	store    GroupStore
	messages *MessageService
}

func NewGroupService(store GroupStore, messages *MessageService) *GroupService {
	return &GroupService{store: store, messages: messages}
}

// GetAll lists every group with the name of its connector.
func (s *GroupService) GetAll(ctx context.Context) ([]Group, error) {
	rows, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, storeError("list groups", err)
	}

	groups := make([]Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, Group{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Connector:   ConnectorRef{Name: row.Connector.Name},
		})
	}
	return groups, nil
}

func (s *GroupService) GetMessages(ctx context.Context, in MessagesInput) ([]model.MessageView, error) {
	return s.messages.GetMessages(ctx, in)
}
