package mapper

import (
	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/pkg/access"
	"noter-be/pkg/richtext"
)

const excerptLength = 200

// ResponseMapper turns full internal records into one of the closed set of
// viewer variants. Callers decide the view with access.Resolver first.
type ResponseMapper struct{}

func NewResponseMapper() *ResponseMapper {
	return &ResponseMapper{}
}

func (m *ResponseMapper) Author(u *entity.User) dto.AuthorSummary {
	if u == nil {
		return dto.AuthorSummary{Name: "Unknown"}
	}
	return dto.AuthorSummary{Id: u.Id, Name: u.Name, AvatarURL: u.AvatarURL}
}

// Note projects a single note. bookmarked is ignored for anonymous viewers.
func (m *ResponseMapper) Note(n *entity.Note, author dto.AuthorSummary, view access.View, bookmarked bool) dto.NoteResponse {
	switch view {
	case access.ViewOwner:
		return m.ownerView(n, author, bookmarked)
	case access.ViewPublic:
		return m.publicView(n, author, bookmarked)
	default:
		return m.anonymousView(n, author)
	}
}

func (m *ResponseMapper) ownerView(n *entity.Note, author dto.AuthorSummary, bookmarked bool) dto.NoteResponse {
	return dto.NoteResponse{
		Id:           n.Id,
		Title:        n.Title,
		Content:      n.Content,
		IsPublic:     n.IsPublic,
		FolderId:     n.FolderId,
		Author:       author,
		IsBookmarked: bookmarked,
		IsOwner:      true,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func (m *ResponseMapper) publicView(n *entity.Note, author dto.AuthorSummary, bookmarked bool) dto.NoteResponse {
	return dto.NoteResponse{
		Id:           n.Id,
		Title:        n.Title,
		Content:      n.Content,
		IsPublic:     n.IsPublic,
		Author:       author,
		IsBookmarked: bookmarked,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func (m *ResponseMapper) anonymousView(n *entity.Note, author dto.AuthorSummary) dto.NoteResponse {
	return m.publicView(n, author, false)
}

// NoteSummary is the list variant of Note.
func (m *ResponseMapper) NoteSummary(n *entity.Note, author dto.AuthorSummary, view access.View, bookmarked bool) dto.NoteSummary {
	summary := dto.NoteSummary{
		Id:        n.Id,
		Title:     n.Title,
		Excerpt:   richtext.Excerpt(n.Content, excerptLength),
		IsPublic:  n.IsPublic,
		Author:    author,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if view == access.ViewOwner {
		summary.FolderId = n.FolderId
	}
	if view != access.ViewAnonymous {
		summary.IsBookmarked = bookmarked
	}
	return summary
}

func (m *ResponseMapper) Folder(f *entity.Folder, author dto.AuthorSummary, counts entity.FolderCounts) dto.FolderSummary {
	return dto.FolderSummary{
		Id:             f.Id,
		Name:           f.Name,
		IsPublic:       f.IsPublic,
		ParentId:       f.ParentId,
		Author:         author,
		NoteCount:      counts.Notes,
		SubfolderCount: counts.Subfolders,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}
