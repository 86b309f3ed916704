package dto

type ExploreRequest struct {
	NotesLimit   int
	FoldersLimit int
}

type ExploreMeta struct {
	TotalNotes   int64 `json:"totalNotes"`
	TotalFolders int64 `json:"totalFolders"`
	NotesLimit   int   `json:"notesLimit"`
	FoldersLimit int   `json:"foldersLimit"`
}

type ExploreResponse struct {
	Notes   []NoteSummary   `json:"notes"`
	Folders []FolderSummary `json:"folders"`
	Meta    ExploreMeta     `json:"meta"`
}

type SearchRequest struct {
	Query string
	Type  string
	Limit int
}

type SearchResponse struct {
	Query        string          `json:"query"`
	Type         string          `json:"type"`
	Notes        []NoteSummary   `json:"notes"`
	Folders      []FolderSummary `json:"folders"`
	TotalResults int             `json:"totalResults"`
}
