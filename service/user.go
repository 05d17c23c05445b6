package service

import (
	"context"
	"time"

	"braincontrol/model"
)

type UserStore interface {
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error)
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// MessageCount mirrors the `_count` object of the users.getAll output.
type MessageCount struct {
	Messages int64 `json:"messages"`
}

type User struct {
	ID          string       `json:"id"`
	Jid         *string      `json:"jid"`
	UserName    *string      `json:"userName"`
	PhoneNumber *string      `json:"phoneNumber"`
	TelegramID  *string      `json:"telegramId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Count       MessageCount `json:"_count"`
}

// UpdateUserInput is the users.updateOne input. UserName left out of the
// request means "keep the stored value".
type UpdateUserInput struct {
	ID       string                 `json:"id"`
	UserName model.Optional[string] `json:"userName"`
}

// GetAll lists every user with their message count, ordered by updatedAt
// then userName.
func (s *UserService) GetAll(ctx context.Context) ([]User, error) {
	rows, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, storeError("list users", err)
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, User{
			ID:          row.ID,
			Jid:         row.Jid,
			UserName:    row.UserName,
			PhoneNumber: row.PhoneNumber,
			TelegramID:  row.TelegramID,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
			Count:       MessageCount{Messages: row.MessageCount},
		})
	}
	return users, nil
}

// UpdateOne overwrites the user's userName when given and returns the stored
// record. A missing id fails with a NotFound error.
func (s *UserService) UpdateOne(ctx context.Context, in UpdateUserInput) (*model.User, error) {
	if in.ID == "" {
		return nil, NewValidationError("id is required", nil)
	}

	user, err := s.store.UpdateUser(ctx, in.ID, model.UserUpdate{UserName: in.UserName})
	if err != nil {
		return nil, storeError("update user "+in.ID, err)
	}
	return user, nil
}
