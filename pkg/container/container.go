package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"contentstudio-backend/internal/config"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/infrastructure/cache"
	"contentstudio-backend/internal/infrastructure/database"
	"contentstudio-backend/internal/infrastructure/realtime"
	"contentstudio-backend/internal/infrastructure/storage"
	"contentstudio-backend/pkg/jwt"

	"contentstudio-backend/internal/domains/activity"
	"contentstudio-backend/internal/domains/audit"
	"contentstudio-backend/internal/domains/brand"
	"contentstudio-backend/internal/domains/image"
	"contentstudio-backend/internal/domains/team"
	"contentstudio-backend/internal/domains/user"
	"contentstudio-backend/internal/domains/website"

	blogHandler "contentstudio-backend/internal/domains/blog/handler"
	blogRepo "contentstudio-backend/internal/domains/blog/repository"
	blogService "contentstudio-backend/internal/domains/blog/service"
	listingHandler "contentstudio-backend/internal/domains/listing/handler"
	listingRepo "contentstudio-backend/internal/domains/listing/repository"
	listingService "contentstudio-backend/internal/domains/listing/service"
	seoHandler "contentstudio-backend/internal/domains/seo/handler"
	seoRepo "contentstudio-backend/internal/domains/seo/repository"
	seoService "contentstudio-backend/internal/domains/seo/service"
	socialHandler "contentstudio-backend/internal/domains/social/handler"
	socialRepo "contentstudio-backend/internal/domains/social/repository"
	socialService "contentstudio-backend/internal/domains/social/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *cache.RedisClient
	Store      *storage.ObjectStore
	AI         *ai.Client
	Feed       *realtime.Feed
	JWTManager *jwt.Manager

	// Generation lifecycle plumbing, shared by every content domain
	Previews generation.PreviewStore
	Locks    generation.Locker

	// Handlers (the router only ever touches these)
	UserHandler     *user.Handler
	BlogHandler     *blogHandler.BlogHandler
	SocialHandler   *socialHandler.SocialHandler
	ListingHandler  *listingHandler.ListingHandler
	SEOHandler      *seoHandler.SEOHandler
	WebsiteHandler  *website.Handler
	AuditHandler    *audit.Handler
	ImageHandler    *image.Handler
	TeamHandler     *team.Handler
	BrandHandler    *brand.Handler
	ActivityHandler *activity.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph in order:
// config → database → redis → object store → AI client → feed →
// generation plumbing → domains.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	// Redis is load-bearing here: it holds previews, in-flight locks
	// and the change feed, so a failed connection is fatal.
	log.Println("🔴 Connecting to Redis...")

	rdb := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := rdb.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = rdb
	log.Println("✅ Redis connected")

	// ========================================
	// STEP 4: INITIALIZE OBJECT STORE
	// ========================================
	log.Println("🪣 Connecting to MinIO...")

	store, err := storage.NewObjectStore(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object store: %w", err)
	}
	c.Store = store
	log.Println("✅ Object store ready")

	// ========================================
	// STEP 5: SHARED COLLABORATORS
	// ========================================
	c.AI = ai.NewClient(cfg.AI)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	c.Feed = realtime.NewFeed(rdb.Client, time.Duration(cfg.Generation.DebounceMillis)*time.Millisecond)

	previewTTL := time.Duration(cfg.Generation.PreviewTTLMinutes) * time.Minute
	// A lock outliving its provider call is a stuck UI, so the TTL
	// tracks the provider timeout plus a margin.
	lockTTL := time.Duration(cfg.AI.TimeoutSeconds+30) * time.Second
	c.Previews = generation.NewRedisPreviewStore(rdb.Client, previewTTL)
	c.Locks = generation.NewRedisLocker(rdb.Client, lockTTL)

	// ========================================
	// STEP 6: DOMAINS
	// ========================================
	log.Println("📦 Wiring domains...")

	c.initDomains()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// initDomains wires repository → service → handler per domain.
func (c *Container) initDomains() {
	pool := c.DB.Pool
	limit := c.Config.Generation.HistoryLimit

	userSvc := user.NewService(user.NewPostgresRepository(pool), c.JWTManager)
	c.UserHandler = user.NewHandler(userSvc)

	blogSvc := blogService.NewBlogService(
		blogRepo.NewPostgresBlogRepository(pool), c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.BlogHandler = blogHandler.NewBlogHandler(blogSvc)

	socialSvc := socialService.NewSocialService(
		socialRepo.NewPostgresSocialRepository(pool), c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.SocialHandler = socialHandler.NewSocialHandler(socialSvc)

	listingSvc := listingService.NewListingService(
		listingRepo.NewPostgresListingRepository(pool), c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.ListingHandler = listingHandler.NewListingHandler(listingSvc)

	seoSvc := seoService.NewSEOService(
		seoRepo.NewPostgresSEORepository(pool), c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.SEOHandler = seoHandler.NewSEOHandler(seoSvc)

	websiteSvc := website.NewService(
		website.NewPostgresRepository(pool), c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.WebsiteHandler = website.NewHandler(websiteSvc)

	auditSvc := audit.NewService(
		audit.NewPostgresRepository(pool), c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.AuditHandler = audit.NewHandler(auditSvc)

	imageSvc := image.NewService(
		image.NewPostgresRepository(pool), c.Store, c.AI, c.Previews, c.Locks, c.Feed, limit)
	c.ImageHandler = image.NewHandler(imageSvc)

	teamSvc := team.NewService(team.NewPostgresRepository(pool), c.Feed)
	c.TeamHandler = team.NewHandler(teamSvc)

	brandSvc := brand.NewService(
		brand.NewPostgresRepository(pool), c.Store, storage.NewImageProcessor(), c.Feed)
	c.BrandHandler = brand.NewHandler(brandSvc)

	activitySvc := activity.NewService(activity.NewPostgresRepository(pool), limit)
	c.ActivityHandler = activity.NewHandler(activitySvc)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases external connections in reverse init order.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleanup complete")
}
