package container

import (
	"context"
	"fmt"
	"time"

	"microposts-backend/internal/config"
	infraCache "microposts-backend/internal/infrastructure/cache"
	"microposts-backend/internal/infrastructure/database"
	"microposts-backend/pkg/jwt"
	"microposts-backend/pkg/logger"

	postHandler "microposts-backend/internal/domains/post/handler"
	postRepo "microposts-backend/internal/domains/post/repository"
	postService "microposts-backend/internal/domains/post/service"
	profileHandler "microposts-backend/internal/domains/profile/handler"
	profileRepo "microposts-backend/internal/domains/profile/repository"
	profileService "microposts-backend/internal/domains/profile/service"
	"microposts-backend/internal/domains/ratelimit"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application dependency graph. Everything in it is a
// singleton for the lifetime of the process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient // nil unless the redis limiter is selected
	JWTManager *jwt.Manager
	Limiter    ratelimit.Limiter

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	PostRepo  postRepo.PostRepository
	Directory profileRepo.Directory

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	FeedService    postService.FeedService
	WriteService   postService.WriteService
	ProfileService profileService.ProfileService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	PostHandler    *postHandler.PostHandler
	ProfileHandler *profileHandler.ProfileHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config, infrastructure, admission control, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{
		"environment":       cfg.App.Environment,
		"admission_backend": cfg.Admission.Backend,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
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
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	// Only the redis limiter needs it, and there it is required
	if cfg.Admission.Backend == config.AdmissionBackendRedis {
		rc := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = rc
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// ========================================
	// STEP 4: ADMISSION CONTROL
	// ========================================
	if err := c.initLimiter(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init admission control: %w", err)
	}

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initLimiter() error {
	policy := ratelimit.Policy{
		Window: c.Config.Admission.Window,
		Quota:  c.Config.Admission.Quota,
	}

	var (
		limiter ratelimit.Limiter
		err     error
	)
	switch c.Config.Admission.Backend {
	case config.AdmissionBackendRedis:
		limiter, err = ratelimit.NewRedisLimiter(c.Redis.Client, policy, c.Config.Admission.Prefix)
	case config.AdmissionBackendPostgres:
		limiter, err = ratelimit.NewPostgresLimiter(c.DB.Pool, policy)
	case config.AdmissionBackendMemory:
		limiter, err = ratelimit.NewMemoryLimiter(policy)
	default:
		err = fmt.Errorf("unknown admission backend %q", c.Config.Admission.Backend)
	}
	if err != nil {
		return err
	}

	c.Limiter = limiter
	logger.Info("Admission control ready", map[string]interface{}{
		"backend": c.Config.Admission.Backend,
		"window":  policy.Window.String(),
		"quota":   policy.Quota,
	})
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.PostRepo = postRepo.NewPostgresPostRepository(pool)
	c.Directory = profileRepo.NewPostgresDirectory(pool)
}

func (c *Container) initServices() {
	c.FeedService = postService.NewFeedService(c.PostRepo, c.Directory, c.Config.Feed)
	c.WriteService = postService.NewPostWriteService(c.PostRepo, c.Limiter)
	c.ProfileService = profileService.NewProfileService(c.Directory)
}

func (c *Container) initHandlers() {
	c.PostHandler = postHandler.NewPostHandler(c.FeedService, c.WriteService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService, c.FeedService)
}

// HealthCheck pings every backing service the container holds
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "ok"}

	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = err.Error()
	}
	if c.Redis != nil {
		status["redis"] = "ok"
		if err := c.Redis.HealthCheck(ctx); err != nil {
			status["redis"] = err.Error()
		}
	}

	return status
}

// Cleanup releases connections. Called during graceful shutdown.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
}
