package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Content   string     `gorm:"type:text;not null"`
	AuthorId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsPublic  bool       `gorm:"not null;index"`
	FolderId  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}
