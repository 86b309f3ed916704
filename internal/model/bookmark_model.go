package model

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_note"`
	NoteId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_note;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
