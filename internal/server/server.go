package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "flexgen/docs"
	"flexgen/internal/ai"
	"flexgen/internal/config"
	"flexgen/internal/handler"
	flexHandler "flexgen/internal/handler/flex"
	"flexgen/internal/pkg/cache"
	"flexgen/internal/pkg/eventbus"
	"flexgen/internal/pkg/flextools"
	"flexgen/internal/pkg/metrics"
	"flexgen/internal/pkg/mongodb"
	genRepo "flexgen/internal/repository/generation"
	"flexgen/internal/server/middleware"
	"flexgen/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	mongo   *mongodb.Client
	redis   *cache.RedisCache
	nats    *eventbus.Publisher
	metrics *metrics.Recorder
	flexSvc *service.FlexService
}

// New 创建服务器实例
// 凭证缺失不会阻止启动，生成接口会把它作为 missing_credential 报告给调用方
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 MongoDB (可选)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without generation audit")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			// 创建索引
			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without generation stats")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化 NATS (可选)
	var publisher *eventbus.Publisher
	if cfg.NATS.URL != "" {
		p, err := eventbus.NewPublisher(&cfg.NATS)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing without generation events")
		} else {
			publisher = p
			log.Info().Str("url", cfg.NATS.URL).Str("subject", p.Subject()).Msg("connected to NATS")
		}
	}

	// 初始化 Completer，配置错误留给请求报告
	completer, configErr := ai.NewCompleter(context.Background(), &cfg.AI)
	if configErr != nil {
		var cfgErr *flextools.ConfigurationError
		if !errors.As(configErr, &cfgErr) {
			return nil, configErr
		}
		log.Error().Err(configErr).Msg("text-generation service is not configured, generation requests will fail")
	} else {
		log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("initialized completer")
	}

	recorder := metrics.NewRecorder()
	opts := []service.Option{service.WithMetrics(recorder)}
	if mongoClient != nil {
		opts = append(opts, service.WithAudit(genRepo.NewRepo(mongoClient.Database())))
	}
	if redisCache != nil {
		opts = append(opts, service.WithStats(redisCache))
	}
	if publisher != nil {
		opts = append(opts, service.WithEvents(publisher))
	}
	flexSvc := service.NewFlexService(completer, configErr,
		flextools.NewValidator(cfg.Generation.SliderMax), opts...)

	srv := &Server{
		cfg:     cfg,
		engine:  engine,
		mongo:   mongoClient,
		redis:   redisCache,
		nats:    publisher,
		metrics: recorder,
		flexSvc: flexSvc,
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Tracing())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.readinessChecks())
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Prometheus 指标
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		flexHdl := flexHandler.NewHandler(s.flexSvc, s.cfg.AI.Timeout)

		v1.POST("/generate", flexHdl.Generate)
		v1.POST("/playground", flexHdl.Playground)
		v1.GET("/stats", flexHdl.Stats)
		v1.GET("/generations", flexHdl.ListGenerations)
	}
}

// readinessChecks 凭证必须存在，已连接的存储必须可用
func (s *Server) readinessChecks() map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"completer": func(context.Context) error {
			return s.flexSvc.ConfigError()
		},
	}
	if s.mongo != nil {
		checks["mongo"] = s.mongo.Ping
	}
	if s.redis != nil {
		checks["redis"] = s.redis.Ping
	}
	if s.nats != nil {
		checks["nats"] = s.nats.Ping
	}
	return checks
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		// 先停止接收请求，再关闭存储连接
		shutdownErr := srv.Shutdown(context.Background())

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}
		if s.nats != nil {
			if err := s.nats.Close(); err != nil {
				log.Error().Err(err).Msg("failed to drain NATS connection")
			}
		}

		return shutdownErr
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
