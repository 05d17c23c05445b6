// Package modeltest opens throwaway sqlite stores for tests.
package modeltest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"braincontrol/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated store backed by a private in-memory database that
// is closed when the test ends.
func Open(t testing.TB) (*model.Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.InstallDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return model.NewStore(db), db
}

// Fixture seeds rows through a store and fails the test on any error.
type Fixture struct {
	t     testing.TB
	store *model.Store
}

func NewFixture(t testing.TB, store *model.Store) *Fixture {
	return &Fixture{t: t, store: store}
}

func (f *Fixture) User(userName string, updatedAt time.Time) *model.User {
	f.t.Helper()
	user := &model.User{UserName: &userName, CreatedAt: updatedAt, UpdatedAt: updatedAt}
	if err := f.store.CreateUser(context.Background(), user); err != nil {
		f.t.Fatal(err)
	}
	return user
}

func (f *Fixture) Agent(name, constitution string) *model.Agent {
	f.t.Helper()
	agent := &model.Agent{Name: name, Constitution: constitution}
	if err := f.store.CreateAgent(context.Background(), agent); err != nil {
		f.t.Fatal(err)
	}
	return agent
}

// Group creates a group bound to a new connector called connectorName.
func (f *Fixture) Group(id, name, connectorName string) *model.Group {
	f.t.Helper()
	connector := &model.Connector{Name: connectorName}
	if err := f.store.CreateConnector(context.Background(), connector); err != nil {
		f.t.Fatal(err)
	}
	group := &model.Group{ID: id, Name: name, Description: name + " chat", ConnectorID: connector.ID}
	if err := f.store.CreateGroup(context.Background(), group); err != nil {
		f.t.Fatal(err)
	}
	return group
}

func (f *Fixture) Message(groupID, content string, author model.Author, createdAt time.Time) *model.Message {
	f.t.Helper()
	message, err := f.store.CreateMessage(context.Background(), model.NewMessage{
		GroupID:   groupID,
		Content:   content,
		Author:    author,
		CreatedAt: createdAt,
	})
	if err != nil {
		f.t.Fatal(err)
	}
	return message
}

// Thread seeds n messages in the group, one minute apart starting at start,
// alternating between user and agent authors. Message i has content "m<i>".
func (f *Fixture) Thread(groupID string, n int, start time.Time, user *model.User, agent *model.Agent) {
	f.t.Helper()
	for i := 0; i < n; i++ {
		author := model.UserAuthor(model.UserRef{ID: user.ID})
		if i%2 == 1 {
			author = model.AgentAuthor(model.AgentRef{ID: agent.ID})
		}
		f.Message(groupID, fmt.Sprintf("m%d", i), author, start.Add(time.Duration(i)*time.Minute))
	}
}
