package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	AuthorId  uuid.UUID
	IsPublic  bool
	FolderId  *uuid.UUID // nil = root level
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Note) IsOwnedBy(userId *uuid.UUID) bool {
	return userId != nil && *userId == n.AuthorId
}
