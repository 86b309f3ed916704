package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuthorSummary struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

// NoteResponse is the single-note read shape. FolderId is only filled for the owner.
type NoteResponse struct {
	Id           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	IsPublic     bool          `json:"isPublic"`
	FolderId     *uuid.UUID    `json:"folderId,omitempty"`
	Author       AuthorSummary `json:"author"`
	IsBookmarked bool          `json:"isBookmarked"`
	IsOwner      bool          `json:"isOwner"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// NoteSummary is the list shape: content is reduced to a plain-text excerpt.
type NoteSummary struct {
	Id           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Excerpt      string        `json:"excerpt"`
	IsPublic     bool          `json:"isPublic"`
	FolderId     *uuid.UUID    `json:"folderId,omitempty"`
	Author       AuthorSummary `json:"author"`
	IsBookmarked bool          `json:"isBookmarked"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type ListNotesRequest struct {
	FolderId OptionalUUID // unset = all notes, null = root level
}

type CreateNoteRequest struct {
	Title    string     `json:"title" validate:"required,max=255"`
	Content  string     `json:"content" validate:"required"`
	IsPublic *bool      `json:"isPublic"` // defaults to true
	FolderId *uuid.UUID `json:"folderId"`
}

type CreateNoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	IsPublic  bool       `json:"isPublic"`
	FolderId  *uuid.UUID `json:"folderId"`
	CreatedAt time.Time  `json:"createdAt"`
}

type UpdateNoteRequest struct {
	Id       uuid.UUID    `json:"-"`
	Title    *string      `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string      `json:"content" validate:"omitempty,min=1"`
	IsPublic *bool        `json:"isPublic"`
	FolderId OptionalUUID `json:"folderId"`
}

type UpdateNoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	IsPublic  bool       `json:"isPublic"`
	FolderId  *uuid.UUID `json:"folderId"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
