package model

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Connector is the external platform bridge a group is bound to.
type Connector struct {
	ID   string `gorm:"primaryKey;type:varchar(191)" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

func (c *Connector) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type Group struct {
	ID          string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ConnectorID string    `gorm:"type:varchar(191);not null;index" json:"connectorId"`
	Connector   Connector `json:"connector"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

// ListGroups returns every group with its connector joined in.
func (s *Store) ListGroups(ctx context.Context) ([]Group, error) {
	groups := []Group{}
	if err := s.db.WithContext(ctx).Joins("Connector").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *Store) CreateConnector(ctx context.Context, connector *Connector) error {
	if err := s.db.WithContext(ctx).Create(connector).Error; err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}
	return nil
}

// CreateGroup stores a group bound to an existing connector.
func (s *Store) CreateGroup(ctx context.Context, group *Group) error {
	if group.ConnectorID == "" {
		return fmt.Errorf("group %q has no connector", group.Name)
	}
	if err := s.db.WithContext(ctx).Omit("Connector").Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}
