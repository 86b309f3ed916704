package database

import (
	"context"
	"os"
	"testing"

	"noter-be/internal/model"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when DB_CONNECTION_STRING is set.
func TestGormConnection(t *testing.T) {
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	t.Run("users", func(t *testing.T) {
		_, err := uow.UserRepository().Count(ctx)
		assert.NoError(t, err)
	})

	t.Run("public notes", func(t *testing.T) {
		_, err := uow.NoteRepository().Count(ctx, specification.PublicOnly{Table: "notes"})
		assert.NoError(t, err)
	})

	t.Run("folders", func(t *testing.T) {
		_, err := uow.FolderRepository().Count(ctx, specification.PublicOnly{Table: "folders"})
		assert.NoError(t, err)
	})

	t.Run("bookmarks", func(t *testing.T) {
		_, err := uow.BookmarkRepository().Count(ctx)
		assert.NoError(t, err)
	})
}
