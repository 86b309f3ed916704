package contract

import (
	"context"

	"noter-be/internal/entity"
	"noter-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookmarkRepository interface {
	// Insert stores the bookmark unless the (user, note) pair already exists.
	// It reports whether a row was written.
	Insert(ctx context.Context, bookmark *entity.Bookmark) (bool, error)
	// Remove deletes the (user, note) pair and reports whether a row existed.
	Remove(ctx context.Context, userId, noteId uuid.UUID) (bool, error)
	DeleteByNoteIDs(ctx context.Context, noteIDs []uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Bookmark, error)
	// FindNoteIDs returns the subset of noteIDs bookmarked by the user, in one query.
	FindNoteIDs(ctx context.Context, userId uuid.UUID, noteIDs []uuid.UUID) ([]uuid.UUID, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
