package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByParentID filters folders by parent. A nil parent selects root folders.
type ByParentID struct {
	ParentID *uuid.UUID
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	if s.ParentID == nil {
		return db.Where("folders.parent_id IS NULL")
	}
	return db.Where("folders.parent_id = ?", *s.ParentID)
}

type ByParentIDs struct {
	ParentIDs []uuid.UUID
}

func (s ByParentIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.ParentIDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("parent_id IN ?", s.ParentIDs)
}
