package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserDirectoryEntry struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AvatarURL       *string   `json:"avatarUrl,omitempty"`
	PublicNoteCount int64     `json:"publicNoteCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type UserProfileResponse struct {
	Id            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Email         *string         `json:"email,omitempty"` // only for the user themself
	AvatarURL     *string         `json:"avatarUrl,omitempty"`
	IsSelf        bool            `json:"isSelf"`
	NoteCount     int64           `json:"noteCount"`
	FolderCount   int64           `json:"folderCount"`
	RecentNotes   []NoteSummary   `json:"recentNotes"`
	RecentFolders []FolderSummary `json:"recentFolders"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type UserContentResponse struct {
	User      AuthorSummary            `json:"user"`
	IsSelf    bool                     `json:"isSelf"`
	Notes     []NoteSummary            `json:"notes"`
	Folders   []FolderSummary          `json:"folders"`
	Bookmarks []BookmarkedNoteResponse `json:"bookmarks,omitempty"`
}
