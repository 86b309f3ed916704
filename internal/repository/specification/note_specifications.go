package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFolderID filters notes by folder. A nil folder selects root-level notes.
type ByFolderID struct {
	FolderID *uuid.UUID
}

func (s ByFolderID) Apply(db *gorm.DB) *gorm.DB {
	if s.FolderID == nil {
		return db.Where("notes.folder_id IS NULL")
	}
	return db.Where("notes.folder_id = ?", *s.FolderID)
}

type ByFolderIDs struct {
	FolderIDs []uuid.UUID
}

func (s ByFolderIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.FolderIDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("folder_id IN ?", s.FolderIDs)
}

type ByAuthorID struct {
	AuthorID uuid.UUID
}

func (s ByAuthorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", s.AuthorID)
}

// PublicOnly restricts a note or folder query to public rows.
type PublicOnly struct {
	Table string
}

func (s PublicOnly) Apply(db *gorm.DB) *gorm.DB {
	if s.Table != "" {
		return db.Where(s.Table+".is_public = ?", true)
	}
	return db.Where("is_public = ?", true)
}

// VisibleTo keeps rows the user may read: public ones and their own.
type VisibleTo struct {
	Table  string
	UserID uuid.UUID
}

func (s VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("("+s.Table+".is_public = ? OR "+s.Table+".author_id = ?)", true, s.UserID)
}
