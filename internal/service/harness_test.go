package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"noter-be/internal/entity"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/repository/unitofwork"
	"noter-be/internal/testutil"
	"noter-be/pkg/cache"
	"noter-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BaseEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BaseEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type harness struct {
	ctx       context.Context
	db        *gorm.DB
	seed      *testutil.Seed
	uow       unitofwork.RepositoryFactory
	store     *cache.MemoryStore
	cache     *cache.Cache
	publisher *recordingPublisher

	notes     INoteService
	folders   IFolderService
	bookmarks IBookmarkService
	public    IPublicService
	search    ISearchService
	users     IUserService
	auth      IAuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	log := logger.NewNopLogger()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	store := cache.NewMemoryStore()
	memo := cache.New(store, 150*time.Millisecond, log)
	policy := cache.DefaultPolicy()
	publisher := &recordingPublisher{}
	projector := NewBookmarkProjector(uowFactory)
	bookmarks := NewBookmarkService(uowFactory, projector, log)

	return &harness{
		ctx:       context.Background(),
		db:        db,
		seed:      testutil.NewSeed(t, db),
		uow:       uowFactory,
		store:     store,
		cache:     memo,
		publisher: publisher,
		notes:     NewNoteService(uowFactory, projector, memo, policy, publisher, log),
		folders:   NewFolderService(uowFactory, projector, memo, publisher, log),
		bookmarks: bookmarks,
		public:    NewPublicService(uowFactory, projector, memo, policy, log),
		search:    NewSearchService(uowFactory, projector),
		users:     NewUserService(uowFactory, projector, bookmarks),
		auth:      NewAuthService(uowFactory, "test-secret", time.Hour, log),
	}
}

func idOf(u *entity.User) *uuid.UUID {
	return &u.Id
}

func ptr[T any](v T) *T {
	return &v
}
