package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/HeartlessDevil29/Labirint/api"
	api_i "github.com/HeartlessDevil29/Labirint/api/i"
	"github.com/HeartlessDevil29/Labirint/api/identity"
	mazeapi "github.com/HeartlessDevil29/Labirint/api/maze"
	routeapi "github.com/HeartlessDevil29/Labirint/api/route"
	"github.com/HeartlessDevil29/Labirint/config"
	logger "github.com/HeartlessDevil29/Labirint/infrastruture/log"
	"github.com/HeartlessDevil29/Labirint/infrastruture/metrics"
	"github.com/HeartlessDevil29/Labirint/infrastruture/repo"
	"github.com/HeartlessDevil29/Labirint/infrastruture/routestore"
	"github.com/HeartlessDevil29/Labirint/infrastruture/token"
	"github.com/HeartlessDevil29/Labirint/service"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	routeRepo          i.RouteRepo
	fixBuffer          i.FixBuffer
	jwtTokenizer       i.Tokenizer
	mazeMetrics        *metrics.Recorder
	mazeSessionManager i.MazeSessionManager
	routeRecorder      i.RouteRecorder
	mazeController     api_i.Controller
	routeController    api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRouteRepo(client *mongo.Client) {
	routeRepo = repo.NewRouteRepo(client, config.Envs.DBName, "routes")
	appLogger.Info("Route repository initialized")
}

func initFixBuffer(client *redis.Client) {
	var err error
	fixBuffer, err = routestore.NewRedisFixBuffer(client, "labirint", config.Envs.RouteTTLSeconds, newLogger("ROUTE-STORE", config.ColorYellow))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating fix buffer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Fix buffer initialized")
}

func initJWTTokenizer() {
	var err error
	jwtTokenizer, err = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating JWT tokenizer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeSessionManager() {
	var err error
	mazeSessionManager, err = service.NewMazeSessionManager(&service.MazeConfig{
		ResolutionMeters: config.Envs.ResolutionMeters,
		MaxCells:         config.Envs.MaxGridCells,
		Metrics:          mazeMetrics,
		Logger:           newLogger("MAZE", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze session manager initialized")
}

func initRouteRecorder() {
	var err error
	routeRecorder, err = service.NewRouteRecorder(&service.RecorderConfig{
		Buffer:    fixBuffer,
		Repo:      routeRepo,
		Tokenizer: jwtTokenizer,
		Mazes:     mazeSessionManager,
		Metrics:   mazeMetrics,
		Logger:    newLogger("ROUTE", config.ColorPurple),
		TokenTTL:  time.Duration(config.Envs.RouteTokenTTLSeconds) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating route recorder: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Route recorder initialized")
}

func initControllers() {
	mazeController = mazeapi.NewMazeController(mazeSessionManager)
	routeController = routeapi.NewRouteController(routeRecorder)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController, routeController},
		AuthorizationMiddleware: identity.Authorize(t),
		Middlewares:             []gin.HandlerFunc{metrics.Middleware()},
		MetricsHandler:          metrics.Handler(),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	mazeMetrics = metrics.NewRecorder()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(ctx)
	defer redisClient.Close()

	initRouteRepo(mongoClient)
	initFixBuffer(redisClient)
	initJWTTokenizer()
	initMazeSessionManager()
	initRouteRecorder()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
