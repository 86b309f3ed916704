package service

import (
	"context"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"
	"noter-be/pkg/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 100
)

type IPublicService interface {
	PublicNotes(ctx context.Context, caller *uuid.UUID, limit int) ([]dto.NoteSummary, error)
	PublicFolders(ctx context.Context, parentId *uuid.UUID) ([]dto.FolderSummary, error)
	Explore(ctx context.Context, caller *uuid.UUID, req *dto.ExploreRequest) (*dto.ExploreResponse, error)
}

type publicService struct {
	uowFactory unitofwork.RepositoryFactory
	presenter  *presenter
	cache      *cache.Cache
	policy     cache.Policy
	logger     logger.ILogger
}

func NewPublicService(
	uowFactory unitofwork.RepositoryFactory,
	projector *BookmarkProjector,
	c *cache.Cache,
	policy cache.Policy,
	log logger.ILogger,
) IPublicService {
	return &publicService{
		uowFactory: uowFactory,
		presenter:  newPresenter(uowFactory, projector),
		cache:      c,
		policy:     policy,
		logger:     log,
	}
}

// exploreRecord is the cached, viewer-independent part of the explore feed.
type exploreRecord struct {
	Notes   []noteRecord        `json:"notes"`
	Folders []dto.FolderSummary `json:"folders"`
	Meta    dto.ExploreMeta     `json:"meta"`
}

// ClampLimit maps a requested page size into [1, max], using def for zero or negative values.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func (s *publicService) PublicNotes(ctx context.Context, caller *uuid.UUID, limit int) ([]dto.NoteSummary, error) {
	limit = ClampLimit(limit, DefaultFeedLimit, MaxFeedLimit)
	key := cache.PublicNotesKey(limit)

	var records []noteRecord
	if !s.cache.GetJSON(ctx, key, &records) {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		notes, err := uow.NoteRepository().FindAll(ctx,
			specification.PublicOnly{Table: "notes"},
			specification.OrderBy{Field: "updated_at", Desc: true},
			specification.Pagination{Limit: limit},
		)
		if err != nil {
			return nil, err
		}
		records, err = s.presenter.records(ctx, notes)
		if err != nil {
			return nil, err
		}
		s.cache.SetJSON(ctx, key, records, s.policy.FeedTTL)
	}

	return s.presenter.noteSummaries(ctx, caller, records)
}

// PublicFolders lists public folders at one level, most recently updated first.
// Counts cover public children only.
func (s *publicService) PublicFolders(ctx context.Context, parentId *uuid.UUID) ([]dto.FolderSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.PublicOnly{Table: "folders"},
		specification.ByParentID{ParentID: parentId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return s.presenter.folders(ctx, nil, folders)
}

// Explore builds the combined public feed. Notes, folders and both totals are
// fetched concurrently; the joined result is cached without any viewer state.
func (s *publicService) Explore(ctx context.Context, caller *uuid.UUID, req *dto.ExploreRequest) (*dto.ExploreResponse, error) {
	notesLimit := ClampLimit(req.NotesLimit, DefaultFeedLimit, MaxFeedLimit)
	foldersLimit := ClampLimit(req.FoldersLimit, DefaultFeedLimit, MaxFeedLimit)
	key := cache.ExploreKey(notesLimit, foldersLimit)

	var rec exploreRecord
	if !s.cache.GetJSON(ctx, key, &rec) {
		built, err := s.buildExplore(ctx, notesLimit, foldersLimit)
		if err != nil {
			return nil, err
		}
		rec = *built
		s.cache.SetJSON(ctx, key, rec, s.policy.FeedTTL)
	}

	notes, err := s.presenter.noteSummaries(ctx, caller, rec.Notes)
	if err != nil {
		return nil, err
	}
	folders := rec.Folders
	if folders == nil {
		folders = []dto.FolderSummary{}
	}

	return &dto.ExploreResponse{
		Notes:   notes,
		Folders: folders,
		Meta:    rec.Meta,
	}, nil
}

func (s *publicService) buildExplore(ctx context.Context, notesLimit, foldersLimit int) (*exploreRecord, error) {
	var (
		notes        []*entity.Note
		folders      []*entity.Folder
		totalNotes   int64
		totalFolders int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = s.uowFactory.NewUnitOfWork(gctx).NoteRepository().FindAll(gctx,
			specification.PublicOnly{Table: "notes"},
			specification.OrderBy{Field: "updated_at", Desc: true},
			specification.Pagination{Limit: notesLimit},
		)
		return err
	})
	g.Go(func() error {
		var err error
		folders, err = s.uowFactory.NewUnitOfWork(gctx).FolderRepository().FindAll(gctx,
			specification.PublicOnly{Table: "folders"},
			specification.OrderBy{Field: "updated_at", Desc: true},
			specification.Pagination{Limit: foldersLimit},
		)
		return err
	})
	g.Go(func() error {
		var err error
		totalNotes, err = s.uowFactory.NewUnitOfWork(gctx).NoteRepository().Count(gctx, specification.PublicOnly{Table: "notes"})
		return err
	})
	g.Go(func() error {
		var err error
		totalFolders, err = s.uowFactory.NewUnitOfWork(gctx).FolderRepository().Count(gctx, specification.PublicOnly{Table: "folders"})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records, err := s.presenter.records(ctx, notes)
	if err != nil {
		return nil, err
	}
	summaries, err := s.presenter.folders(ctx, nil, folders)
	if err != nil {
		return nil, err
	}

	return &exploreRecord{
		Notes:   records,
		Folders: summaries,
		Meta: dto.ExploreMeta{
			TotalNotes:   totalNotes,
			TotalFolders: totalFolders,
			NotesLimit:   notesLimit,
			FoldersLimit: foldersLimit,
		},
	}, nil
}
