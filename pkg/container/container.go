package container

import (
	"context"
	"fmt"
	"log"

	"monster-backend/internal/config"
	"monster-backend/internal/domains/monster/handler"
	monsterrepo "monster-backend/internal/domains/monster/repository"
	monsterservice "monster-backend/internal/domains/monster/service"
	userhandler "monster-backend/internal/domains/user/handler"
	userrepo "monster-backend/internal/domains/user/repository"
	userservice "monster-backend/internal/domains/user/service"
	rediscache "monster-backend/internal/infrastructure/cache"
	"monster-backend/internal/infrastructure/database"
	"monster-backend/pkg/jwt"
)

// Container wires the application together in dependency order:
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *database.PostgresDB
	Cache      *rediscache.RedisCache
	JWTManager *jwt.Manager

	// Repositories
	MonsterRepo monsterrepo.MonsterRepository
	UserRepo    userrepo.UserRepository

	// Services
	MonsterService monsterservice.Service
	UserService    userservice.Service

	// Handlers
	MonsterHandler *handler.MonsterHandler
	UserHandler    *userhandler.UserHandler
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	if err := c.initConfig(); err != nil {
		return nil, fmt.Errorf("failed to init config: %w", err)
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	c.initCache(ctx)
	c.initJWT()
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] All dependencies initialized")
	return c, nil
}

func (c *Container) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c.Config = cfg
	return nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return err
	}

	return c.DB.HealthCheck(ctx)
}

// initCache connects Redis but tolerates failure: the service layer treats
// a nil cache as a permanent miss and keeps serving from the database.
func (c *Container) initCache(ctx context.Context) {
	redisCache := rediscache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := redisCache.Connect(ctx); err != nil {
		log.Printf("[CONTAINER] Redis unavailable, continuing without cache: %v", err)
		return
	}

	c.Cache = redisCache
}

func (c *Container) initJWT() {
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)
}

func (c *Container) initRepositories() {
	c.MonsterRepo = monsterrepo.NewPostgresMonsterRepository(c.DB.Pool)
	c.UserRepo = userrepo.NewPostgresUserRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	if c.Cache != nil {
		c.MonsterService = monsterservice.NewMonsterService(c.MonsterRepo, c.Cache)
	} else {
		c.MonsterService = monsterservice.NewMonsterService(c.MonsterRepo, nil)
	}

	c.UserService = userservice.NewUserService(c.UserRepo)
}

func (c *Container) initHandlers() {
	c.MonsterHandler = handler.NewMonsterHandler(c.MonsterService)
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
}

// Cleanup releases infrastructure resources in reverse init order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close Redis: %v", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close database: %v", err)
		}
	}

	log.Println("[CONTAINER] Cleanup complete")
}
