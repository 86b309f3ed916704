package service

import (
	"context"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/access"

	"github.com/google/uuid"
)

type IBookmarkService interface {
	Toggle(ctx context.Context, caller *uuid.UUID, noteId uuid.UUID) (*dto.ToggleBookmarkResponse, error)
	List(ctx context.Context, caller uuid.UUID) ([]dto.BookmarkedNoteResponse, error)
}

type bookmarkService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *access.Resolver
	presenter  *presenter
	logger     logger.ILogger
}

func NewBookmarkService(uowFactory unitofwork.RepositoryFactory, projector *BookmarkProjector, log logger.ILogger) IBookmarkService {
	return &bookmarkService{
		uowFactory: uowFactory,
		resolver:   access.NewResolver(),
		presenter:  newPresenter(uowFactory, projector),
		logger:     log,
	}
}

// Toggle flips the caller's bookmark. Adding one requires the note to be
// readable by the caller; removing one does not.
//
// Removal is attempted first; if nothing was removed an insert runs that
// ignores a conflict on the (user, note) pair. A concurrent toggle that wins
// the insert race therefore still reports isBookmarked=true instead of failing.
func (s *bookmarkService) Toggle(ctx context.Context, caller *uuid.UUID, noteId uuid.UUID) (*dto.ToggleBookmarkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}
	if caller == nil {
		return nil, apperror.Unauthenticated("You must be logged in to bookmark notes")
	}

	removed, err := uow.BookmarkRepository().Remove(ctx, *caller, noteId)
	if err != nil {
		return nil, err
	}
	if removed {
		return &dto.ToggleBookmarkResponse{IsBookmarked: false}, nil
	}

	// Only adding needs read access; a note that went private can still be unbookmarked.
	if _, err := s.resolver.Resolve(access.KindNote, access.Note(note), caller, access.Read); err != nil {
		return nil, err
	}

	inserted, err := uow.BookmarkRepository().Insert(ctx, &entity.Bookmark{UserId: *caller, NoteId: noteId})
	if err != nil {
		return nil, err
	}
	if !inserted {
		s.logger.Debug("BOOKMARK", "Concurrent toggle already bookmarked note", map[string]interface{}{
			"user_id": caller.String(),
			"note_id": noteId.String(),
		})
	}
	return &dto.ToggleBookmarkResponse{IsBookmarked: true}, nil
}

// List returns the caller's bookmarks, newest first. Notes that have since
// turned private under another author are left out.
func (s *bookmarkService) List(ctx context.Context, caller uuid.UUID) ([]dto.BookmarkedNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmarks, err := uow.BookmarkRepository().FindAll(ctx,
		specification.ByUserID{UserID: caller},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if len(bookmarks) == 0 {
		return []dto.BookmarkedNoteResponse{}, nil
	}

	noteIDs := make([]uuid.UUID, len(bookmarks))
	for i, b := range bookmarks {
		noteIDs[i] = b.NoteId
	}
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByIDs{IDs: noteIDs},
		specification.VisibleTo{Table: "notes", UserID: caller},
	)
	if err != nil {
		return nil, err
	}

	readable := make(map[uuid.UUID]*entity.Note, len(notes))
	for _, n := range notes {
		readable[n.Id] = n
	}

	ordered := make([]*entity.Note, 0, len(readable))
	bookmarkedAt := make([]*entity.Bookmark, 0, len(readable))
	for _, b := range bookmarks {
		if n, ok := readable[b.NoteId]; ok {
			ordered = append(ordered, n)
			bookmarkedAt = append(bookmarkedAt, b)
		}
	}

	summaries, err := s.presenter.notes(ctx, &caller, ordered)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookmarkedNoteResponse, len(summaries))
	for i, summary := range summaries {
		out[i] = dto.BookmarkedNoteResponse{NoteSummary: summary, BookmarkedAt: bookmarkedAt[i].CreatedAt}
	}
	return out, nil
}
