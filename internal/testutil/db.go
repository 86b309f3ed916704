// Package testutil builds a real repository stack on an in-memory SQLite
// database so service and HTTP tests run without external services.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"noter-be/internal/entity"
	"noter-be/internal/model"
	"noter-be/internal/repository/implementation"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory database with every table migrated.
// A single connection keeps the shared-cache database alive and serialises access.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8])

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// Seed writes fixtures straight through the repositories.
type Seed struct {
	t  *testing.T
	db *gorm.DB
}

func NewSeed(t *testing.T, db *gorm.DB) *Seed {
	return &Seed{t: t, db: db}
}

func (s *Seed) User(name string) *entity.User {
	s.t.Helper()
	email := strings.ToLower(name) + "@example.com"
	u := &entity.User{Id: uuid.New(), Name: name, Email: &email}
	require.NoError(s.t, implementation.NewUserRepository(s.db).Create(context.Background(), u))
	return u
}

func (s *Seed) Folder(author *entity.User, name string, isPublic bool, parent *entity.Folder) *entity.Folder {
	s.t.Helper()
	f := &entity.Folder{Id: uuid.New(), Name: name, AuthorId: author.Id, IsPublic: isPublic}
	if parent != nil {
		f.ParentId = &parent.Id
	}
	require.NoError(s.t, implementation.NewFolderRepository(s.db).Create(context.Background(), f))
	return f
}

func (s *Seed) Note(author *entity.User, title string, isPublic bool, folder *entity.Folder) *entity.Note {
	s.t.Helper()
	n := &entity.Note{
		Id:       uuid.New(),
		Title:    title,
		Content:  "<p>" + title + " body</p>",
		AuthorId: author.Id,
		IsPublic: isPublic,
	}
	if folder != nil {
		n.FolderId = &folder.Id
	}
	require.NoError(s.t, implementation.NewNoteRepository(s.db).Create(context.Background(), n))
	return n
}

// Bookmark stores a bookmark created at the given offset from now, so list order is deterministic.
func (s *Seed) Bookmark(user *entity.User, note *entity.Note, age time.Duration) *entity.Bookmark {
	s.t.Helper()
	b := &entity.Bookmark{
		Id:        uuid.New(),
		UserId:    user.Id,
		NoteId:    note.Id,
		CreatedAt: time.Now().Add(-age),
	}
	_, err := implementation.NewBookmarkRepository(s.db).Insert(context.Background(), b)
	require.NoError(s.t, err)
	return b
}

// Count returns the number of rows in table matching the optional condition.
func (s *Seed) Count(table string, query string, args ...interface{}) int64 {
	s.t.Helper()
	var n int64
	q := s.db.Table(table)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(s.t, q.Count(&n).Error)
	return n
}
