package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// User is a human chat participant. The external ids are only set for the
// platforms the user has been seen on.
type User struct {
	ID          string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	Jid         *string   `gorm:"type:varchar(191);uniqueIndex" json:"jid"`
	TelegramID  *string   `gorm:"type:varchar(191);uniqueIndex" json:"telegramId"`
	PhoneNumber *string   `gorm:"type:varchar(64)" json:"phoneNumber"`
	UserName    *string   `gorm:"type:varchar(255);index" json:"userName"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;index" json:"updatedAt"`
	Messages    []Message `json:"-"`
}

// BeforeCreate stores timestamps in UTC; sqlite compares them as text.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return nil
}

// UserSummary is a User row together with the number of messages they wrote.
type UserSummary struct {
	ID           string
	Jid          *string
	TelegramID   *string
	PhoneNumber  *string
	UserName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int64
}

// UserUpdate lists the fields of a User that can be changed. Absent fields
// are left as stored.
type UserUpdate struct {
	UserName Optional[string]
}

// ListUsers returns every user ordered by updatedAt, then userName.
func (s *Store) ListUsers(ctx context.Context) ([]UserSummary, error) {
	messageCount := s.db.Model(&Message{}).
		Select("count(*)").
		Where("messages.user_id = users.id")

	users := []UserSummary{}
	err := s.db.WithContext(ctx).
		Model(&User{}).
		Select("users.*, (?) AS message_count", messageCount).
		Order("users.updated_at ASC").
		Order("users.user_name ASC").
		Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

// UpdateUser applies the present fields of update to the user and returns
// the stored row. Concurrent updates are last-write-wins.
func (s *Store) UpdateUser(ctx context.Context, id string, update UserUpdate) (*User, error) {
	values := map[string]interface{}{}
	if userName, ok := update.UserName.Get(); ok {
		values["user_name"] = userName
	}

	if len(values) > 0 {
		result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(values)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update user: %w", result.Error)
		}
	}

	return s.GetUser(ctx, id)
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Omit("Messages").Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
