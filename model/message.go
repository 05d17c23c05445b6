package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Message belongs to one group. AgentID is set for assistant messages and
// UserID for user messages, never both.
type Message struct {
	ID        string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	Content   string    `gorm:"type:text" json:"content"`
	Role      Role      `gorm:"type:varchar(64);not null" json:"role"`
	GroupID   string    `gorm:"type:varchar(191);not null;index:idx_group_id_created_at,priority:1" json:"groupId"`
	AgentID   *string   `gorm:"type:varchar(191);index" json:"agentId"`
	UserID    *string   `gorm:"type:varchar(191);index" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_group_id_created_at,priority:2" json:"createdAt"`
	Group     *Group    `json:"-"`
	Agent     *Agent    `json:"-"`
	User      *User     `json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// Author rebuilds the tagged author from the row's role and whichever
// relation was loaded alongside it. A row missing the foreign key its role
// calls for has no author.
func (m *Message) Author() Author {
	switch m.Role {
	case RoleAssistant:
		if m.AgentID == nil {
			return Author{}
		}
		ref := AgentRef{ID: *m.AgentID}
		if m.Agent != nil {
			ref.ID, ref.Name = m.Agent.ID, m.Agent.Name
		}
		return AgentAuthor(ref)
	case RoleUser:
		if m.UserID == nil {
			return Author{}
		}
		ref := UserRef{ID: *m.UserID}
		if m.User != nil {
			ref.ID, ref.UserName = m.User.ID, m.User.UserName
		}
		return UserAuthor(ref)
	}
	return Author{}
}

// MessageView is a message as shown in a thread.
type MessageView struct {
	ID        string
	Content   string
	Role      Role
	CreatedAt time.Time
	Author    Author
}

func (v MessageView) MarshalJSON() ([]byte, error) {
	out := struct {
		ID        string    `json:"id"`
		Content   string    `json:"content"`
		Role      Role      `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
		Agent     *AgentRef `json:"agent"`
		User      *UserRef  `json:"user"`
	}{
		ID:        v.ID,
		Content:   v.Content,
		Role:      v.Role,
		CreatedAt: v.CreatedAt,
	}
	if ref, ok := v.Author.Agent(); ok {
		out.Agent = &ref
	}
	if ref, ok := v.Author.User(); ok {
		out.User = &ref
	}
	return json.Marshal(out)
}

// NewMessage carries what is needed to store a message. The role and the
// author foreign key are both taken from Author.
type NewMessage struct {
	GroupID   string
	Content   string
	Author    Author
	CreatedAt time.Time
}

var errNoAuthor = errors.New("message has no author")

func (s *Store) CreateMessage(ctx context.Context, in NewMessage) (*Message, error) {
	if in.Author.IsZero() {
		return nil, errNoAuthor
	}

	message := &Message{
		GroupID:   in.GroupID,
		Content:   in.Content,
		Role:      in.Author.Role(),
		CreatedAt: in.CreatedAt.UTC(),
	}
	if ref, ok := in.Author.Agent(); ok {
		message.AgentID = &ref.ID
	}
	if ref, ok := in.Author.User(); ok {
		message.UserID = &ref.ID
	}

	if err := s.db.WithContext(ctx).Omit("Group", "Agent", "User").Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// ListGroupMessages returns at most limit messages of the group, newest
// first. An unknown group yields an empty slice.
func (s *Store) ListGroupMessages(ctx context.Context, groupID string, limit int) ([]MessageView, error) {
	var messages []Message
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Agent", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		}).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "user_name")
		}).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages of group %s: %w", groupID, err)
	}

	views := make([]MessageView, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		views = append(views, MessageView{
			ID:        m.ID,
			Content:   m.Content,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
			Author:    m.Author(),
		})
	}
	return views, nil
}
