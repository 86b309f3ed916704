package dto

import (
	"time"

	"noter-be/pkg/hierarchy"

	"github.com/google/uuid"
)

// FolderSummary counts only what the caller can see.
type FolderSummary struct {
	Id             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	IsPublic       bool          `json:"isPublic"`
	ParentId       *uuid.UUID    `json:"parentId"`
	Author         AuthorSummary `json:"author"`
	NoteCount      int64         `json:"noteCount"`
	SubfolderCount int64         `json:"subfolderCount"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

type FolderDetailResponse struct {
	Folder      FolderSummary     `json:"folder"`
	Subfolders  []FolderSummary   `json:"subfolders"`
	Notes       []NoteSummary     `json:"notes"`
	Breadcrumbs []hierarchy.Crumb `json:"breadcrumbs"`
	IsOwner     bool              `json:"isOwner"`
}

type CreateFolderRequest struct {
	Name     string     `json:"name" validate:"required,max=255"`
	IsPublic *bool      `json:"isPublic"` // defaults to true
	ParentId *uuid.UUID `json:"parentId"`
}

type UpdateFolderRequest struct {
	Id       uuid.UUID    `json:"-"`
	Name     *string      `json:"name" validate:"omitempty,min=1,max=255"`
	IsPublic *bool        `json:"isPublic"`
	ParentId OptionalUUID `json:"parentId"`
}

type DeleteFolderRequest struct {
	Id           uuid.UUID
	KeepContents bool
}

type DeleteFolderResponse struct {
	Id           uuid.UUID `json:"id"`
	KeepContents bool      `json:"keepContents"`
	DeletedNotes int       `json:"deletedNotes"`
}
