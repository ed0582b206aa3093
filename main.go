package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/logger"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	cfg            config.Config
	appLogger      *logger.Logger
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       i.UserRepo
	mazeRepo       i.MazeRepo
	mazeCache      i.MazeCache
	recentIndex    i.SortedIndex
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeService    i.MazeService
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
)

func fatal(msg string, err error) {
	appLogger.Error(fmt.Sprintf("%s: %v", msg, err))
	os.Exit(1)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[APP] [FATAL] %v\n", err)
		os.Exit(1)
	}
}

func initLogger() {
	var err error
	appLogger, err = logger.New("APP", os.Stdout, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[APP] [FATAL] creating logger: %v\n", err)
		os.Exit(1)
	}
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		fatal("Failed to connect to MongoDB", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed", err)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed", err)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	var err error
	userRepo, err = repo.NewUserRepo(ctx, mongoClient, cfg.DBName, "users")
	if err != nil {
		fatal("Creating user repository", err)
	}
	mazeRepo = repo.NewMazeRepo(mongoClient, cfg.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initStorage() {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	mazeCache = cache.NewRedisMazeCache(redisClient, "maze", ttl)
	recentIndex = sortedstorage.NewRedisSortedIndex(redisClient, ttl)
	appLogger.Info("Cache and recent index initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initServices() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer, appLogger.With("AUTH"))
	if err != nil {
		fatal("Creating auth service", err)
	}

	mazeService, err = service.NewMazeService(mazeRepo, mazeCache, recentIndex, appLogger.With("MAZE"), &service.MazeOptions{
		MaxLevel:    cfg.MazeMaxLevel,
		RecentLimit: int64(cfg.RecentLimit),
	})
	if err != nil {
		fatal("Creating maze service", err)
	}
	appLogger.Info("Services initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService)
	if err != nil {
		fatal("Creating maze controller", err)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		BaseURL:                 "/api",
		Mode:                    cfg.GinMode,
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	initConfig()
	initLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx)
	initStorage()
	initJWTTokenizer()
	initServices()
	initControllers()
	initRouter(jwtTokenizer)

	appLogger.Info(fmt.Sprintf("Listening on %s:%d", cfg.HostIP, cfg.RESTPort))
	if err := router.Run(); err != nil {
		fatal("Starting server", err)
	}
}
