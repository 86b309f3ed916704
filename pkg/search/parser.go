package search

import (
	"strings"
)

// MinQueryLength is the shortest trimmed query the search endpoint accepts.
const MinQueryLength = 2

type Type string

const (
	TypeAll     Type = "all"
	TypeNotes   Type = "notes"
	TypeFolders Type = "folders"
)

// ParseType falls back to TypeAll for anything unrecognised.
func ParseType(raw string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeNotes:
		return TypeNotes
	case TypeFolders:
		return TypeFolders
	default:
		return TypeAll
	}
}

func (t Type) IncludesNotes() bool {
	return t == TypeAll || t == TypeNotes
}

func (t Type) IncludesFolders() bool {
	return t == TypeAll || t == TypeFolders
}

// SearchFilters holds the extracted filters and the remaining clean query
type SearchFilters struct {
	FolderName  string
	AuthorName  string
	SearchQuery string // The remaining text to match against titles, content and names
}

func (f SearchFilters) IsEmpty() bool {
	return f.FolderName == "" && f.AuthorName == "" && f.SearchQuery == ""
}

// ParseQuery extracts slash commands from the raw query string
// Supported:
// /in:<term> OR /folder:<term> -> Filter notes by folder name
// /by:<term> -> Filter by author name
// <text> -> Remaining text is the SearchQuery
func ParseQuery(raw string) SearchFilters {
	filters := SearchFilters{}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "/in:"):
			filters.FolderName = strings.TrimPrefix(lowerPart, "/in:")
		case strings.HasPrefix(lowerPart, "/folder:"):
			filters.FolderName = strings.TrimPrefix(lowerPart, "/folder:")
		case strings.HasPrefix(lowerPart, "/by:"):
			filters.AuthorName = strings.TrimPrefix(lowerPart, "/by:")
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.SearchQuery = strings.Join(cleanParts, " ")
	return filters
}
