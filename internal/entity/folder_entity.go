package entity

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id        uuid.UUID
	Name      string
	AuthorId  uuid.UUID
	IsPublic  bool
	ParentId  *uuid.UUID // nil = root level
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *Folder) IsOwnedBy(userId *uuid.UUID) bool {
	return userId != nil && *userId == f.AuthorId
}

// FolderCounts holds the derived direct-children counters of a folder.
type FolderCounts struct {
	Notes      int64
	Subfolders int64
}
