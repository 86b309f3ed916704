package service

import (
	"context"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/mapper"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/access"

	"github.com/google/uuid"
)

const profileRecentLimit = 5

type IUserService interface {
	Directory(ctx context.Context) ([]dto.UserDirectoryEntry, error)
	Profile(ctx context.Context, caller *uuid.UUID, userId uuid.UUID) (*dto.UserProfileResponse, error)
	Content(ctx context.Context, caller *uuid.UUID, userId uuid.UUID) (*dto.UserContentResponse, error)
}

type userService struct {
	uowFactory      unitofwork.RepositoryFactory
	presenter       *presenter
	mapper          *mapper.ResponseMapper
	bookmarkService IBookmarkService
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, projector *BookmarkProjector, bookmarkService IBookmarkService) IUserService {
	return &userService{
		uowFactory:      uowFactory,
		presenter:       newPresenter(uowFactory, projector),
		mapper:          mapper.NewResponseMapper(),
		bookmarkService: bookmarkService,
	}
}

// Directory lists every user with the number of public notes they have.
func (s *userService) Directory(ctx context.Context) ([]dto.UserDirectoryEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.Id
	}
	counts, err := uow.NoteRepository().CountByAuthor(ctx, ids, specification.PublicOnly{})
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserDirectoryEntry, len(users))
	for i, u := range users {
		out[i] = dto.UserDirectoryEntry{
			Id:              u.Id,
			Name:            s.mapper.Author(u).Name,
			AvatarURL:       u.AvatarURL,
			PublicNoteCount: counts[u.Id],
			CreatedAt:       u.CreatedAt,
		}
	}
	return out, nil
}

// Profile shows a user with visibility-aware counts and their most recent
// notes and root folders. The email is only revealed to the user themself.
func (s *userService) Profile(ctx context.Context, caller *uuid.UUID, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	scope := access.Scope(user.Id, caller)

	noteSpecs := []specification.Specification{specification.ByAuthorID{AuthorID: user.Id}}
	folderSpecs := []specification.Specification{specification.ByAuthorID{AuthorID: user.Id}}
	if scope.PublicOnly {
		noteSpecs = append(noteSpecs, specification.PublicOnly{})
		folderSpecs = append(folderSpecs, specification.PublicOnly{})
	}

	noteCount, err := uow.NoteRepository().Count(ctx, noteSpecs...)
	if err != nil {
		return nil, err
	}
	folderCount, err := uow.FolderRepository().Count(ctx, folderSpecs...)
	if err != nil {
		return nil, err
	}

	notes, err := uow.NoteRepository().FindAll(ctx, append(noteSpecs,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: profileRecentLimit},
	)...)
	if err != nil {
		return nil, err
	}
	folders, err := uow.FolderRepository().FindAll(ctx, append(folderSpecs,
		specification.ByParentID{ParentID: nil},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: profileRecentLimit},
	)...)
	if err != nil {
		return nil, err
	}

	recentNotes, err := s.presenter.notes(ctx, caller, notes)
	if err != nil {
		return nil, err
	}
	recentFolders, err := s.presenter.folders(ctx, caller, folders)
	if err != nil {
		return nil, err
	}

	res := &dto.UserProfileResponse{
		Id:            user.Id,
		Name:          s.mapper.Author(user).Name,
		AvatarURL:     user.AvatarURL,
		IsSelf:        scope.IsOwner(),
		NoteCount:     noteCount,
		FolderCount:   folderCount,
		RecentNotes:   recentNotes,
		RecentFolders: recentFolders,
		CreatedAt:     user.CreatedAt,
	}
	if scope.IsOwner() {
		res.Email = user.Email
	}
	return res, nil
}

// Content lists everything of userId the caller may see, plus the caller's
// own bookmarks when they look at themselves.
func (s *userService) Content(ctx context.Context, caller *uuid.UUID, userId uuid.UUID) (*dto.UserContentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	scope := access.Scope(user.Id, caller)

	noteSpecs := []specification.Specification{
		specification.ByAuthorID{AuthorID: user.Id},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	folderSpecs := []specification.Specification{
		specification.ByAuthorID{AuthorID: user.Id},
		specification.OrderBy{Field: "name"},
	}
	if scope.PublicOnly {
		noteSpecs = append(noteSpecs, specification.PublicOnly{})
		folderSpecs = append(folderSpecs, specification.PublicOnly{})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, noteSpecs...)
	if err != nil {
		return nil, err
	}
	folders, err := uow.FolderRepository().FindAll(ctx, folderSpecs...)
	if err != nil {
		return nil, err
	}

	res := &dto.UserContentResponse{
		User:   s.mapper.Author(user),
		IsSelf: scope.IsOwner(),
	}
	if res.Notes, err = s.presenter.notes(ctx, caller, notes); err != nil {
		return nil, err
	}
	if res.Folders, err = s.presenter.folders(ctx, caller, folders); err != nil {
		return nil, err
	}
	if scope.IsOwner() {
		if res.Bookmarks, err = s.bookmarkService.List(ctx, user.Id); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *userService) findUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
