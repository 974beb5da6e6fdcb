package api

import (
	"context"
	"fmt"
	"os"

	"github.com/alex-pricope/event-judging-system/api/controllers"
	"github.com/alex-pricope/event-judging-system/api/transport"
	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/cache"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	ctx := context.Background()

	stores, err := openStores(ctx, s.config.StorageConfig)
	if err != nil {
		logging.Log.Errorf("failed to open storage: %v", err)
		panic("failed to open storage")
	}
	leaderboards := openLeaderboardCache(ctx, s.config.CacheConfig)

	mode := gin.ReleaseMode
	if os.Getenv("APP_ENV") == "local" {
		mode = gin.DebugMode
	}
	r := NewHandler(mode, s.config, stores, leaderboards)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// NewHandler wires storage, scoring and auth into the HTTP routes.
func NewHandler(ginMode string, config *Config, stores *storage.Stores, leaderboards scoring.LeaderboardCache) *gin.Engine {
	r := transport.NewRouter(ginMode)

	tokens := auth.NewTokenService(config.JWTSecret, config.TokenTTL)
	hasher := auth.NewPasswordHasher(config.BcryptCost)
	directory := &auth.Directory{Admins: stores.Admins, Judges: stores.Judges}
	authenticate := transport.AuthMiddleware(tokens, directory, config.EnforceActiveJudges)

	recorder := scoring.NewRecorder(stores.Teams, stores.Evaluations, leaderboards)
	aggregator := scoring.NewAggregator(stores.Teams, stores.Judges, stores.Evaluations, leaderboards)

	//Register controllers
	authController := controllers.NewAuthController(stores.Admins, stores.Judges, tokens, hasher, controllers.InitialAdmin{
		Name:     config.AdminName,
		Email:    config.AdminEmail,
		Password: config.AdminPassword,
	})
	authController.RegisterRoutes(r)

	adminGroup := r.Group("/admin", authenticate, transport.RequireAdmin())
	judgeGroup := r.Group("/judge", authenticate, transport.RequireJudge())

	teamController := controllers.NewTeamController(stores.Teams, stores.Evaluations, leaderboards)
	teamController.RegisterRoutes(adminGroup)
	judgeController := controllers.NewJudgeController(stores.Judges, hasher)
	judgeController.RegisterRoutes(adminGroup)
	evaluationController := controllers.NewEvaluationController(stores.Teams, recorder)
	evaluationController.RegisterRoutes(judgeGroup)
	leaderboardController := controllers.NewLeaderboardController(aggregator)
	leaderboardController.RegisterAdminRoutes(adminGroup)
	leaderboardController.RegisterJudgeRoutes(judgeGroup)

	return r
}

func openStores(ctx context.Context, config StorageConfig) (*storage.Stores, error) {
	switch config.Driver {
	case storage.DriverDynamo:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		dynamoClient := dynamodb.NewFromConfig(cfg)
		return storage.NewDynamoStores(dynamoClient, storage.DynamoTables{
			Teams:       config.TableNameTeams,
			Judges:      config.TableNameJudges,
			Admins:      config.TableNameAdmins,
			Evaluations: config.TableNameEvaluations,
		}), nil
	case storage.DriverSQLite, storage.DriverMySQL:
		db, err := storage.OpenSQL(config.Driver, config.DSN)
		if err != nil {
			return nil, err
		}
		return storage.NewGormStores(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}

// openLeaderboardCache falls back to no caching when redis is not configured or unreachable.
func openLeaderboardCache(ctx context.Context, config CacheConfig) scoring.LeaderboardCache {
	if config.RedisAddr == "" {
		logging.Log.Info("CACHE: redis not configured, leaderboards are computed on every request")
		return scoring.NopCache{}
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err != nil {
		logging.Log.Errorf("CACHE: %v, continuing without leaderboard cache", err)
		return scoring.NopCache{}
	}
	return cache.NewRedisLeaderboardCache(client, config.TTL)
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
