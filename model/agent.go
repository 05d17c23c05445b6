package model

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Agent is an automated participant. Constitution is its persona prompt.
type Agent struct {
	ID           string `gorm:"primaryKey;type:varchar(191)" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Constitution string `gorm:"type:text" json:"constitution"`
}

func (a *Agent) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

// ListAgents returns every agent in storage order.
func (s *Store) ListAgents(ctx context.Context) ([]Agent, error) {
	agents := []Agent{}
	err := s.db.WithContext(ctx).
		Select("id", "name", "constitution").
		Find(&agents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

func (s *Store) CreateAgent(ctx context.Context, agent *Agent) error {
	if err := s.db.WithContext(ctx).Create(agent).Error; err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}
