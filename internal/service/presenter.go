package service

import (
	"context"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/mapper"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/access"

	"github.com/google/uuid"
)

// presenter assembles list responses with batched lookups: one query for
// authors, one for bookmark state, and grouped queries for folder counts.
type presenter struct {
	uowFactory unitofwork.RepositoryFactory
	projector  *BookmarkProjector
	mapper     *mapper.ResponseMapper
}

func newPresenter(uowFactory unitofwork.RepositoryFactory, projector *BookmarkProjector) *presenter {
	return &presenter{
		uowFactory: uowFactory,
		projector:  projector,
		mapper:     mapper.NewResponseMapper(),
	}
}

// noteRecord is the viewer-independent form of a note that gets cached.
type noteRecord struct {
	Note   entity.Note       `json:"note"`
	Author dto.AuthorSummary `json:"author"`
}

func (p *presenter) authors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dto.AuthorSummary, error) {
	out := make(map[uuid.UUID]dto.AuthorSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: unique(ids)})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.Id] = p.mapper.Author(u)
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			out[id] = p.mapper.Author(nil)
		}
	}
	return out, nil
}

func (p *presenter) records(ctx context.Context, notes []*entity.Note) ([]noteRecord, error) {
	authorIDs := make([]uuid.UUID, len(notes))
	for i, n := range notes {
		authorIDs[i] = n.AuthorId
	}
	authors, err := p.authors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]noteRecord, len(notes))
	for i, n := range notes {
		out[i] = noteRecord{Note: *n, Author: authors[n.AuthorId]}
	}
	return out, nil
}

// noteSummaries projects records for caller. Each note gets the view the
// resolver grants, so a mixed list can hold owner and public entries.
func (p *presenter) noteSummaries(ctx context.Context, caller *uuid.UUID, records []noteRecord) ([]dto.NoteSummary, error) {
	ids := make([]uuid.UUID, len(records))
	for i, r := range records {
		ids[i] = r.Note.Id
	}
	bookmarked, err := p.projector.Project(ctx, caller, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NoteSummary, len(records))
	for i := range records {
		r := &records[i]
		view := access.ViewFor(r.Note.AuthorId, caller)
		out[i] = p.mapper.NoteSummary(&r.Note, r.Author, view, bookmarked[r.Note.Id])
	}
	return out, nil
}

func (p *presenter) notes(ctx context.Context, caller *uuid.UUID, notes []*entity.Note) ([]dto.NoteSummary, error) {
	records, err := p.records(ctx, notes)
	if err != nil {
		return nil, err
	}
	return p.noteSummaries(ctx, caller, records)
}

// folderCounts returns direct-children counts per folder. Children always
// share the folder's author, so the caller sees everything in folders they
// own and only public children elsewhere.
func (p *presenter) folderCounts(ctx context.Context, caller *uuid.UUID, folders []*entity.Folder) (map[uuid.UUID]entity.FolderCounts, error) {
	var owned, foreign []uuid.UUID
	for _, f := range folders {
		if f.IsOwnedBy(caller) {
			owned = append(owned, f.Id)
		} else {
			foreign = append(foreign, f.Id)
		}
	}

	out := make(map[uuid.UUID]entity.FolderCounts, len(folders))
	uow := p.uowFactory.NewUnitOfWork(ctx)

	collect := func(ids []uuid.UUID, specs ...specification.Specification) error {
		if len(ids) == 0 {
			return nil
		}
		notes, err := uow.NoteRepository().CountByFolder(ctx, ids, specs...)
		if err != nil {
			return err
		}
		subfolders, err := uow.FolderRepository().CountByParent(ctx, ids, specs...)
		if err != nil {
			return err
		}
		for _, id := range ids {
			out[id] = entity.FolderCounts{Notes: notes[id], Subfolders: subfolders[id]}
		}
		return nil
	}

	if err := collect(owned); err != nil {
		return nil, err
	}
	if err := collect(foreign, specification.PublicOnly{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *presenter) folders(ctx context.Context, caller *uuid.UUID, folders []*entity.Folder) ([]dto.FolderSummary, error) {
	authorIDs := make([]uuid.UUID, len(folders))
	for i, f := range folders {
		authorIDs[i] = f.AuthorId
	}
	authors, err := p.authors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	counts, err := p.folderCounts(ctx, caller, folders)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FolderSummary, len(folders))
	for i, f := range folders {
		out[i] = p.mapper.Folder(f, authors[f.AuthorId], counts[f.Id])
	}
	return out, nil
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
