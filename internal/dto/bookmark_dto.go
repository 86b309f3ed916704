package dto

import "time"

type ToggleBookmarkResponse struct {
	IsBookmarked bool `json:"isBookmarked"`
}

type BookmarkedNoteResponse struct {
	NoteSummary
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}
