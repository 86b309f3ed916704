package service

import (
	"context"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/mapper"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/access"
	"noter-be/pkg/cache"
	"noter-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	Show(ctx context.Context, caller *uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, caller uuid.UUID, req *dto.ListNotesRequest) ([]dto.NoteSummary, error)
	Create(ctx context.Context, caller uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Update(ctx context.Context, caller *uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, caller *uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	resolver         *access.Resolver
	projector        *BookmarkProjector
	presenter        *presenter
	mapper           *mapper.ResponseMapper
	cache            *cache.Cache
	policy           cache.Policy
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	projector *BookmarkProjector,
	c *cache.Cache,
	policy cache.Policy,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		resolver:         access.NewResolver(),
		projector:        projector,
		presenter:        newPresenter(uowFactory, projector),
		mapper:           mapper.NewResponseMapper(),
		cache:            c,
		policy:           policy,
		publisherService: publisherService,
		logger:           log,
	}
}

// Show serves a single note. Cached records are viewer-independent, so the
// access decision and bookmark projection run on every request, hit or miss.
func (s *noteService) Show(ctx context.Context, caller *uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	var rec noteRecord
	cached := false
	for _, key := range cache.NoteLookupKeys(id, caller) {
		if s.cache.GetJSON(ctx, key, &rec) {
			cached = true
			break
		}
	}

	var found *entity.Note
	if cached {
		found = &rec.Note
	} else {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		found = note
	}

	decision, err := s.resolver.Resolve(access.KindNote, access.Note(found), caller, access.Read)
	if err != nil {
		return nil, err
	}

	if !cached {
		authors, err := s.presenter.authors(ctx, []uuid.UUID{found.AuthorId})
		if err != nil {
			return nil, err
		}
		rec = noteRecord{Note: *found, Author: authors[found.AuthorId]}

		// The owner's copy lives under the owner's key, the shared copy under anonymous.
		var viewer *uuid.UUID
		if decision.IsOwner() {
			viewer = &rec.Note.AuthorId
		}
		s.cache.SetJSON(ctx, cache.NoteKey(id, viewer), rec, s.policy.NoteTTL)
	}

	bookmarked, err := s.projector.IsBookmarked(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	res := s.mapper.Note(&rec.Note, rec.Author, decision.View, bookmarked)
	return &res, nil
}

func (s *noteService) List(ctx context.Context, caller uuid.UUID, req *dto.ListNotesRequest) ([]dto.NoteSummary, error) {
	specs := []specification.Specification{
		specification.ByAuthorID{AuthorID: caller},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if req.FolderId.Set {
		specs = append(specs, specification.ByFolderID{FolderID: req.FolderId.Value})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return s.presenter.notes(ctx, &caller, notes)
}

func (s *noteService) Create(ctx context.Context, caller uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.FolderId != nil {
		if err := s.checkFolder(ctx, uow, caller, *req.FolderId); err != nil {
			return nil, err
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	note := entity.Note{
		Id:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		AuthorId: caller,
		IsPublic: isPublic,
		FolderId: req.FolderId,
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeNoteCreated, &note)

	return &dto.CreateNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		IsPublic:  note.IsPublic,
		FolderId:  note.FolderId,
		CreatedAt: note.CreatedAt,
	}, nil
}

// Update and Delete take an optional caller so an unknown id answers 404
// before identity is checked.
func (s *noteService) Update(ctx context.Context, caller *uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if _, err := s.resolver.Resolve(access.KindNote, access.Note(note), caller, access.Mutate); err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}
	if req.FolderId.Set {
		if req.FolderId.Value != nil {
			if err := s.checkFolder(ctx, uow, *caller, *req.FolderId.Value); err != nil {
				return nil, err
			}
		}
		note.FolderId = req.FolderId.Value
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.cache.InvalidateNote(ctx, note.Id, note.AuthorId)
	s.publish(ctx, events.TypeNoteUpdated, note)

	return &dto.UpdateNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		IsPublic:  note.IsPublic,
		FolderId:  note.FolderId,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

// Delete removes the note and its bookmarks together.
func (s *noteService) Delete(ctx context.Context, caller *uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if _, err := s.resolver.Resolve(access.KindNote, access.Note(note), caller, access.Mutate); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.BookmarkRepository().DeleteByNoteIDs(ctx, []uuid.UUID{id}); err != nil {
		return err
	}
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.InvalidateNote(ctx, note.Id, note.AuthorId)
	s.publish(ctx, events.TypeNoteDeleted, note)
	return nil
}

func (s *noteService) checkFolder(ctx context.Context, uow unitofwork.UnitOfWork, caller, folderId uuid.UUID) error {
	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: folderId})
	if err != nil {
		return err
	}
	return s.resolver.ResolveContainer(access.Folder(folder), &caller)
}

func (s *noteService) publish(ctx context.Context, eventType string, note *entity.Note) {
	s.publisherService.Publish(ctx, events.New(eventType, map[string]interface{}{
		"note_id":   note.Id.String(),
		"author_id": note.AuthorId.String(),
		"is_public": note.IsPublic,
	}))
}
