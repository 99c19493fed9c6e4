package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/anyonghua/onektips-server/internal/config"
	"github.com/anyonghua/onektips-server/internal/handler"
	"github.com/anyonghua/onektips-server/internal/middleware"
	"github.com/anyonghua/onektips-server/internal/repository"
	"github.com/anyonghua/onektips-server/internal/routes"
	"github.com/anyonghua/onektips-server/internal/service"
	pkgcache "github.com/anyonghua/onektips-server/pkg/cache"
	"github.com/anyonghua/onektips-server/pkg/jwt"
	pkglogger "github.com/anyonghua/onektips-server/pkg/logger"
	"github.com/anyonghua/onektips-server/pkg/mongodb"
	pkgredis "github.com/anyonghua/onektips-server/pkg/redis"
	"github.com/anyonghua/onektips-server/pkg/seo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const tokenExpiry = 7 * 24 * time.Hour

func main() {
	dotenvFiles := config.LoadDotEnv()

	cfg := config.Load()
	pkglogger.InitStructured(cfg.Env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", cfg.Env).Strs("dotenv", dotenvFiles).Msg("starting")

	// MongoDB connection
	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		zlog.Warn().Err(err).Msg("index creation failed")
	}
	zlog.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	// Redis connection (optional)
	var cacheService pkgcache.Service
	redisClient, err := pkgredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		zlog.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
	} else {
		cacheService = pkgcache.NewService(redisClient)
		zlog.Info().Msg("connected to Redis")
	}

	jwtManager := jwt.NewManager(cfg.Auth.JWTSecret, tokenExpiry)
	pinger := seo.NewBaiduPinger(cfg.App.Site, cfg.Baidu.Token)
	paginator := repository.NewPaginator(10, cfg.App.Limit)

	// Repositories
	articleRepo := repository.NewArticleRepository(db)
	tagRepo := repository.NewTagRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Services
	auditor := service.NewAuditRecorder(eventRepo)
	articleService := service.NewArticleService(articleRepo, tagRepo, paginator, auditor, pinger, cacheService, cfg.App.Site)
	tagService := service.NewTagService(tagRepo, articleRepo, paginator, auditor, pinger, cacheService, cfg.App.Site)

	// Handlers
	articleHandler := handler.NewArticleHandler(articleService)
	tagHandler := handler.NewTagHandler(tagService)
	eventHandler := handler.NewEventHandler(eventRepo, paginator)
	authHandler := handler.NewAuthHandler(cfg.Auth, jwtManager)

	if cfg.Env != "local" && cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  false,
		AllowOrigins:     []string{cfg.App.Site},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Setup(router, articleHandler, tagHandler, eventHandler, authHandler, jwtManager)

	zlog.Info().Str("port", cfg.Port).Msg("listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
