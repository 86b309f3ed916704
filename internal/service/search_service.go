package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"noter-be/internal/dto"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/search"

	"github.com/google/uuid"
)

type ISearchService interface {
	Search(ctx context.Context, caller *uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	presenter  *presenter
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, projector *BookmarkProjector) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		presenter:  newPresenter(uowFactory, projector),
	}
}

// Search matches public notes by title, content or author name and public
// folders by name. Slash filters (/in:, /by:) narrow the note set further.
func (s *searchService) Search(ctx context.Context, caller *uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(query) < search.MinQueryLength {
		return nil, apperror.Validation("Search query must be at least %d characters long", search.MinQueryLength)
	}

	searchType := search.ParseType(req.Type)
	limit := ClampLimit(req.Limit, DefaultFeedLimit, MaxFeedLimit)
	filters := search.ParseQuery(query)

	res := &dto.SearchResponse{
		Query:   query,
		Type:    string(searchType),
		Notes:   []dto.NoteSummary{},
		Folders: []dto.FolderSummary{},
	}
	if filters.IsEmpty() {
		return res, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if searchType.IncludesNotes() {
		specs := []specification.Specification{specification.PublicOnly{Table: "notes"}}
		if filters.SearchQuery != "" {
			specs = append(specs, specification.NoteOrAuthorSearchQuery{Query: filters.SearchQuery})
		}
		if filters.FolderName != "" {
			specs = append(specs, specification.ByFolderName{Name: filters.FolderName})
		}
		if filters.AuthorName != "" {
			specs = append(specs, specification.ByAuthorName{Table: "notes", Name: filters.AuthorName})
		}
		specs = append(specs,
			specification.OrderBy{Field: "notes.title"},
			specification.OrderBy{Field: "notes.updated_at", Desc: true},
			specification.Pagination{Limit: limit},
		)

		notes, err := uow.NoteRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, err
		}
		if res.Notes, err = s.presenter.notes(ctx, caller, notes); err != nil {
			return nil, err
		}
	}

	if searchType.IncludesFolders() {
		name := filters.SearchQuery
		if name == "" {
			name = filters.FolderName
		}
		specs := []specification.Specification{specification.PublicOnly{Table: "folders"}}
		if name != "" {
			specs = append(specs, specification.FolderSearchQuery{Query: name})
		}
		if filters.AuthorName != "" {
			specs = append(specs, specification.ByAuthorName{Table: "folders", Name: filters.AuthorName})
		}
		specs = append(specs,
			specification.OrderBy{Field: "folders.name"},
			specification.OrderBy{Field: "folders.updated_at", Desc: true},
			specification.Pagination{Limit: limit},
		)

		folders, err := uow.FolderRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, err
		}
		if res.Folders, err = s.presenter.folders(ctx, nil, folders); err != nil {
			return nil, err
		}
	}

	res.TotalResults = len(res.Notes) + len(res.Folders)
	return res, nil
}
