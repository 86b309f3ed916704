package service

import (
	"context"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/repository/contract"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/access"
	"noter-be/pkg/cache"
	"noter-be/pkg/events"
	"noter-be/pkg/hierarchy"

	"github.com/google/uuid"
)

type IFolderService interface {
	List(ctx context.Context, caller uuid.UUID, parentId *uuid.UUID) ([]dto.FolderSummary, error)
	Show(ctx context.Context, caller *uuid.UUID, id uuid.UUID) (*dto.FolderDetailResponse, error)
	Create(ctx context.Context, caller uuid.UUID, req *dto.CreateFolderRequest) (*dto.FolderSummary, error)
	Update(ctx context.Context, caller *uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderSummary, error)
	Delete(ctx context.Context, caller *uuid.UUID, req *dto.DeleteFolderRequest) (*dto.DeleteFolderResponse, error)
}

type folderService struct {
	uowFactory       unitofwork.RepositoryFactory
	resolver         *access.Resolver
	presenter        *presenter
	cache            *cache.Cache
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	projector *BookmarkProjector,
	c *cache.Cache,
	publisherService IPublisherService,
	log logger.ILogger,
) IFolderService {
	return &folderService{
		uowFactory:       uowFactory,
		resolver:         access.NewResolver(),
		presenter:        newPresenter(uowFactory, projector),
		cache:            c,
		publisherService: publisherService,
		logger:           log,
	}
}

// folderTree exposes a folder repository to the hierarchy walks.
type folderTree struct {
	repo contract.FolderRepository
}

func (t folderTree) Node(ctx context.Context, id uuid.UUID) (*hierarchy.Node, error) {
	f, err := t.repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil || f == nil {
		return nil, err
	}
	return &hierarchy.Node{ID: f.Id, Name: f.Name, IsPublic: f.IsPublic, ParentID: f.ParentId}, nil
}

func (t folderTree) Children(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	return t.repo.FindIDs(ctx, specification.ByParentIDs{ParentIDs: parentIDs})
}

func (s *folderService) List(ctx context.Context, caller uuid.UUID, parentId *uuid.UUID) ([]dto.FolderSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.ByAuthorID{AuthorID: caller},
		specification.ByParentID{ParentID: parentId},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, err
	}
	return s.presenter.folders(ctx, &caller, folders)
}

func (s *folderService) Show(ctx context.Context, caller *uuid.UUID, id uuid.UUID) (*dto.FolderDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	decision, err := s.resolver.Resolve(access.KindFolder, access.Folder(folder), caller, access.Read)
	if err != nil {
		return nil, err
	}

	subfolderSpecs := []specification.Specification{
		specification.ByParentID{ParentID: &folder.Id},
		specification.OrderBy{Field: "name"},
	}
	noteSpecs := []specification.Specification{
		specification.ByFolderID{FolderID: &folder.Id},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if decision.PublicOnly {
		subfolderSpecs = append(subfolderSpecs, specification.PublicOnly{Table: "folders"})
		noteSpecs = append(noteSpecs, specification.PublicOnly{Table: "notes"})
	}

	subfolders, err := uow.FolderRepository().FindAll(ctx, subfolderSpecs...)
	if err != nil {
		return nil, err
	}
	notes, err := uow.NoteRepository().FindAll(ctx, noteSpecs...)
	if err != nil {
		return nil, err
	}

	crumbs, err := hierarchy.Breadcrumbs(ctx, folderTree{repo: uow.FolderRepository()}, folder.Id)
	if err != nil {
		if !apperror.Is(err, apperror.KindIntegrity) {
			return nil, err
		}
		s.logger.Warn("FOLDER", "Breadcrumb walk truncated", map[string]interface{}{
			"folder_id": folder.Id.String(),
			"error":     err.Error(),
		})
	}
	if decision.PublicOnly {
		crumbs = hierarchy.VisibleTail(crumbs)
	}

	summaries, err := s.presenter.folders(ctx, caller, append([]*entity.Folder{folder}, subfolders...))
	if err != nil {
		return nil, err
	}
	noteSummaries, err := s.presenter.notes(ctx, caller, notes)
	if err != nil {
		return nil, err
	}

	return &dto.FolderDetailResponse{
		Folder:      summaries[0],
		Subfolders:  summaries[1:],
		Notes:       noteSummaries,
		Breadcrumbs: crumbs,
		IsOwner:     decision.IsOwner(),
	}, nil
}

func (s *folderService) Create(ctx context.Context, caller uuid.UUID, req *dto.CreateFolderRequest) (*dto.FolderSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.ParentId != nil {
		parent, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: *req.ParentId})
		if err != nil {
			return nil, err
		}
		if err := s.resolver.ResolveContainer(access.Folder(parent), &caller); err != nil {
			return nil, err
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	folder := entity.Folder{
		Id:       uuid.New(),
		Name:     req.Name,
		AuthorId: caller,
		IsPublic: isPublic,
		ParentId: req.ParentId,
	}
	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeFolderCreated, &folder)

	summaries, err := s.presenter.folders(ctx, &caller, []*entity.Folder{&folder})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// Update renames, changes visibility or moves a folder. A move may not place
// a folder under itself or any of its descendants.
func (s *folderService) Update(ctx context.Context, caller *uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if _, err := s.resolver.Resolve(access.KindFolder, access.Folder(folder), caller, access.Mutate); err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}
	if req.IsPublic != nil {
		folder.IsPublic = *req.IsPublic
	}
	if req.ParentId.Set {
		if target := req.ParentId.Value; target != nil {
			parent, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: *target})
			if err != nil {
				return nil, err
			}
			if err := s.resolver.ResolveContainer(access.Folder(parent), caller); err != nil {
				return nil, err
			}
			cyclic, err := hierarchy.IsSelfOrDescendant(ctx, folderTree{repo: uow.FolderRepository()}, folder.Id, *target)
			if err != nil {
				return nil, err
			}
			if cyclic {
				return nil, apperror.Validation("A folder cannot be moved into itself or one of its subfolders")
			}
		}
		folder.ParentId = req.ParentId.Value
	}

	if err := uow.FolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeFolderUpdated, folder)

	summaries, err := s.presenter.folders(ctx, caller, []*entity.Folder{folder})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// Delete applies exactly one cascade policy inside a single transaction.
//
// keepContents: direct child notes and folders move to the deleted folder's
// own parent (root when it has none), then the folder row goes.
// Otherwise the whole subtree goes: bookmarks on its notes, the notes, the folders.
func (s *folderService) Delete(ctx context.Context, caller *uuid.UUID, req *dto.DeleteFolderRequest) (*dto.DeleteFolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if _, err := s.resolver.Resolve(access.KindFolder, access.Folder(folder), caller, access.Mutate); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var deletedNotes, movedNotes []uuid.UUID
	if req.KeepContents {
		movedNotes, err = uow.NoteRepository().FindIDs(ctx, specification.ByFolderID{FolderID: &folder.Id})
		if err != nil {
			return nil, err
		}
		if err := uow.NoteRepository().ReassignFolder(ctx, folder.Id, folder.ParentId); err != nil {
			return nil, err
		}
		if err := uow.FolderRepository().ReassignParent(ctx, folder.Id, folder.ParentId); err != nil {
			return nil, err
		}
		if err := uow.FolderRepository().Delete(ctx, folder.Id); err != nil {
			return nil, err
		}
	} else {
		folderIDs, err := hierarchy.Subtree(ctx, folderTree{repo: uow.FolderRepository()}, folder.Id)
		if err != nil {
			return nil, err
		}
		deletedNotes, err = uow.NoteRepository().FindIDs(ctx, specification.ByFolderIDs{FolderIDs: folderIDs})
		if err != nil {
			return nil, err
		}
		if err := uow.BookmarkRepository().DeleteByNoteIDs(ctx, deletedNotes); err != nil {
			return nil, err
		}
		if err := uow.NoteRepository().DeleteByIDs(ctx, deletedNotes); err != nil {
			return nil, err
		}
		if err := uow.FolderRepository().DeleteByIDs(ctx, folderIDs); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Content filed in a folder always belongs to the folder's author.
	for _, noteId := range append(deletedNotes, movedNotes...) {
		s.cache.InvalidateNote(ctx, noteId, folder.AuthorId)
	}
	s.publish(ctx, events.TypeFolderDeleted, folder)

	return &dto.DeleteFolderResponse{
		Id:           folder.Id,
		KeepContents: req.KeepContents,
		DeletedNotes: len(deletedNotes),
	}, nil
}

func (s *folderService) publish(ctx context.Context, eventType string, folder *entity.Folder) {
	s.publisherService.Publish(ctx, events.New(eventType, map[string]interface{}{
		"folder_id": folder.Id.String(),
		"author_id": folder.AuthorId.String(),
		"is_public": folder.IsPublic,
	}))
}
