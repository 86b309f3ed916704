package specification

import (
	"strings"

	"gorm.io/gorm"
)

func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// NoteOrAuthorSearchQuery matches notes by title or content, or by their author's name, case-insensitively.
type NoteOrAuthorSearchQuery struct {
	Query string
}

func (s NoteOrAuthorSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := likePattern(s.Query)
	return db.Where(
		"(LOWER(notes.title) LIKE ? OR LOWER(notes.content) LIKE ? OR notes.author_id IN (?))",
		pattern, pattern,
		db.Session(&gorm.Session{NewDB: true}).Table("users").Select("id").Where("LOWER(name) LIKE ?", pattern),
	)
}

// ByFolderName restricts notes to folders whose name contains the given text.
type ByFolderName struct {
	Name string
}

func (s ByFolderName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.folder_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("folders").Select("id").Where("LOWER(name) LIKE ?", likePattern(s.Name)),
	)
}

// ByAuthorName restricts a note or folder query to authors whose name contains the given text.
type ByAuthorName struct {
	Table string
	Name  string
}

func (s ByAuthorName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.Table+".author_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("users").Select("id").Where("LOWER(name) LIKE ?", likePattern(s.Name)),
	)
}

// FolderSearchQuery matches folders by name, case-insensitively.
type FolderSearchQuery struct {
	Query string
}

func (s FolderSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(folders.name) LIKE ?", likePattern(s.Query))
}
