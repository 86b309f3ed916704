package service

import (
	"context"

	"noter-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// BookmarkProjector derives the per-viewer isBookmarked flag at read time.
// The flag is never stored on a note or in a cached note.
type BookmarkProjector struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewBookmarkProjector(uowFactory unitofwork.RepositoryFactory) *BookmarkProjector {
	return &BookmarkProjector{uowFactory: uowFactory}
}

// Project returns the subset of noteIDs bookmarked by caller using one query.
// Anonymous callers and empty inputs cost nothing.
func (p *BookmarkProjector) Project(ctx context.Context, caller *uuid.UUID, noteIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	bookmarked := make(map[uuid.UUID]bool)
	if caller == nil || len(noteIDs) == 0 {
		return bookmarked, nil
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	ids, err := uow.BookmarkRepository().FindNoteIDs(ctx, *caller, noteIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		bookmarked[id] = true
	}
	return bookmarked, nil
}

// IsBookmarked is the single-note form of Project.
func (p *BookmarkProjector) IsBookmarked(ctx context.Context, caller *uuid.UUID, noteID uuid.UUID) (bool, error) {
	set, err := p.Project(ctx, caller, []uuid.UUID{noteID})
	if err != nil {
		return false, err
	}
	return set[noteID], nil
}
