package contract

import (
	"context"

	"noter-be/internal/entity"
	"noter-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	FindIDs(ctx context.Context, specs ...specification.Specification) ([]uuid.UUID, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountByFolder returns the number of notes per folder for the given folders.
	CountByFolder(ctx context.Context, folderIDs []uuid.UUID, specs ...specification.Specification) (map[uuid.UUID]int64, error)
	// CountByAuthor returns the number of notes per author for the given authors.
	CountByAuthor(ctx context.Context, authorIDs []uuid.UUID, specs ...specification.Specification) (map[uuid.UUID]int64, error)
	// ReassignFolder moves every note of folder `from` into `to` (nil = root).
	ReassignFolder(ctx context.Context, from uuid.UUID, to *uuid.UUID) error
}
