package service

import (
	"context"

	"braincontrol/model"
)

type AgentStore interface {
	ListAgents(ctx context.Context) ([]model.Agent, error)
}

type AgentService struct {
	store    AgentStore
	messages *MessageService
}

func NewAgentService(store AgentStore, messages *MessageService) *AgentService {
	return &AgentService{store: store, messages: messages}
}

func (s *AgentService) GetAll(ctx context.Context) ([]model.Agent, error) {
	agents, err := s.store.ListAgents(ctx)
	if err != nil {
		return nil, storeError("list agents", err)
	}
	return agents, nil
}

func (s *AgentService) GetMessages(ctx context.Context, in MessagesInput) ([]model.MessageView, error) {
	return s.messages.GetMessages(ctx, in)
}
