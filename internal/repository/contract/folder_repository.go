package contract

import (
	"context"

	"noter-be/internal/entity"
	"noter-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *entity.Folder) error
	Update(ctx context.Context, folder *entity.Folder) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error)
	FindIDs(ctx context.Context, specs ...specification.Specification) ([]uuid.UUID, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CountByParent(ctx context.Context, parentIDs []uuid.UUID, specs ...specification.Specification) (map[uuid.UUID]int64, error)
	// ReassignParent moves every direct subfolder of `from` under `to` (nil = root).
	ReassignParent(ctx context.Context, from uuid.UUID, to *uuid.UUID) error
}
