package entity

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	NoteId    uuid.UUID
	CreatedAt time.Time
}
