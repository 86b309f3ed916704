package bootstrap

import (
	"context"
	"time"

	"noter-be/internal/config"
	"noter-be/internal/controller"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/pkg/serverutils"
	"noter-be/internal/repository/unitofwork"
	"noter-be/internal/service"
	internalWS "noter-be/internal/websocket"
	"noter-be/pkg/cache"
	pktNats "noter-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EventsTopic is the in-process topic every content change is published on.
const EventsTopic = "content-events"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	NoteController     controller.INoteController
	FolderController   controller.IFolderController
	BookmarkController controller.IBookmarkController
	PublicController   controller.IPublicController
	SearchController   controller.ISearchController
	UserController     controller.IUserController
	LiveController     controller.ILiveController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	LiveHub         *internalWS.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, log logger.ILogger) *Container {
	c := &Container{Logger: log}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	guard := serverutils.NewAuthGuard(cfg.App.JwtSecret)

	// 2. Cache
	store := c.newCacheStore(cfg, log)
	memo := cache.New(store, cfg.Cache.OpTimeout, log)
	policy := cache.Policy{
		NoteTTL: cfg.Cache.NoteTTL,
		FeedTTL: cfg.Cache.ExploreTTL,
	}

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	origin := watermill.NewUUID()

	var forwarder service.EventForwarder
	var source service.EventSource
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Warn("BOOTSTRAP", "NATS publisher unavailable, events stay local", map[string]interface{}{"error": err.Error()})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Warn("BOOTSTRAP", "NATS subscriber unavailable, peer events ignored", map[string]interface{}{"error": err.Error()})
		} else {
			source = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 4. Services
	c.LiveHub = internalWS.NewHub(log)
	publisherService := service.NewPublisherService(EventsTopic, pubSub, origin, log)
	c.ConsumerService = service.NewConsumerService(pubSub, EventsTopic, memo, forwarder, source, c.LiveHub, origin, log)

	projector := service.NewBookmarkProjector(uowFactory)
	authService := service.NewAuthService(uowFactory, cfg.App.JwtSecret, cfg.App.JwtTTL, log)
	oauthService := service.NewOAuthService(uowFactory, cfg.OAuth, cfg.App.JwtSecret, cfg.App.JwtTTL, log)
	noteService := service.NewNoteService(uowFactory, projector, memo, policy, publisherService, log)
	folderService := service.NewFolderService(uowFactory, projector, memo, publisherService, log)
	bookmarkService := service.NewBookmarkService(uowFactory, projector, log)
	publicService := service.NewPublicService(uowFactory, projector, memo, policy, log)
	searchService := service.NewSearchService(uowFactory, projector)
	userService := service.NewUserService(uowFactory, projector, bookmarkService)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.OAuthController = controller.NewOAuthController(oauthService, cfg.App.ClientURL, log)
	c.NoteController = controller.NewNoteController(noteService, guard)
	c.FolderController = controller.NewFolderController(folderService, guard)
	c.BookmarkController = controller.NewBookmarkController(bookmarkService, guard)
	c.PublicController = controller.NewPublicController(publicService, guard)
	c.SearchController = controller.NewSearchController(searchService, guard)
	c.UserController = controller.NewUserController(userService, guard)
	c.LiveController = controller.NewLiveController(c.LiveHub, guard, log)

	return c
}

// newCacheStore prefers Redis and falls back to the in-process store when
// Redis is not configured or does not answer at startup.
func (c *Container) newCacheStore(cfg *config.Config, log logger.ILogger) cache.Store {
	if cfg.App.RedisURL == "" {
		log.Info("BOOTSTRAP", "REDIS_URL not set, using in-process cache", nil)
		return cache.NewMemoryStore()
	}

	opt, err := cache.RedisOptions(cfg.App.RedisURL, cfg.Cache.OpTimeout)
	if err != nil {
		log.Warn("BOOTSTRAP", "Invalid REDIS_URL, using in-process cache", map[string]interface{}{"error": err.Error()})
		return cache.NewMemoryStore()
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unreachable, using in-process cache", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return cache.NewMemoryStore()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return cache.NewRedisStore(rdb)
}

// Close releases every client the container opened, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
