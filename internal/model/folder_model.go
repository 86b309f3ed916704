package model

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(255);not null"`
	AuthorId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsPublic  bool       `gorm:"not null;index"`
	ParentId  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Folder) TableName() string {
	return "folders"
}
