package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/fundbarometer/internal/fund/application"
	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
	"github.com/wyfcoding/fundbarometer/internal/fund/infrastructure/messaging"
	"github.com/wyfcoding/fundbarometer/internal/fund/infrastructure/persistence/mysql"
	"github.com/wyfcoding/fundbarometer/internal/fund/infrastructure/spreadsheet"
	httpserver "github.com/wyfcoding/fundbarometer/internal/fund/interfaces/http"
	"github.com/wyfcoding/fundbarometer/pkg/config"
	"github.com/wyfcoding/fundbarometer/pkg/db"
	"github.com/wyfcoding/fundbarometer/pkg/logger"
	"github.com/wyfcoding/fundbarometer/pkg/metrics"
	"github.com/wyfcoding/fundbarometer/pkg/middleware"
	"github.com/wyfcoding/fundbarometer/pkg/mq"
	"github.com/wyfcoding/fundbarometer/pkg/utils"
)

// Config 服务配置，在基础配置上扩展摄取与查询两节
type Config struct {
	config.Config `mapstructure:",squash"`

	Ingest IngestConfig `mapstructure:"ingest"`
	Search SearchConfig `mapstructure:"search"`
}

// IngestConfig 摄取流水线配置
type IngestConfig struct {
	// 命中即跳过的表名子串
	SkipSheets []string `mapstructure:"skip_sheets"`
	// 布局推断策略：header 或 fixed
	LayoutStrategy string `mapstructure:"layout_strategy" default:"header"`
	// 跨表去重策略：canonical-first-seen 或 exact-name
	DedupPolicy string `mapstructure:"dedup_policy" default:"canonical-first-seen"`
	// 无法解析的数值按 0 处理而不是缺失
	LenientNumbers bool `mapstructure:"lenient_numbers" default:"false"`
	// 每次摄取前重建 funds 表
	ResetSchema bool `mapstructure:"reset_schema" default:"false"`
}

// SearchConfig 查询配置
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit" default:"20"`
	MaxLimit     int `mapstructure:"max_limit" default:"100"`
	// 启动时预构建索引
	RefreshOnStart bool `mapstructure:"refresh_on_start" default:"true"`
}

// defaultSkipSheets 数据工作簿里非数据表的默认跳过列表
var defaultSkipSheets = []string{"Main Page", "Summary", "Glossary", "Load", "Disclaimer"}

var configPath = flag.String("config", "configs/fundbarometer/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 初始化配置
	var cfg Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if len(cfg.Ingest.SkipSheets) == 0 {
		cfg.Ingest.SkipSheets = defaultSkipSheets
	}

	// 2. 初始化日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	ctx := context.Background()
	logger.Info(ctx, "starting service",
		"service", cfg.ServiceName, "version", cfg.Version, "environment", cfg.Environment)

	// 3. 初始化指标
	m := metrics.New(cfg.ServiceName)
	if err := m.Register(); err != nil {
		logger.Fatal(ctx, "failed to register metrics", "error", err)
	}
	if cfg.Metrics.Enabled {
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Error(ctx, "failed to start metrics server", "error", err)
		}
	}

	// 4. 初始化数据库，启动期对瞬时失败做有限重试
	var database *db.DB
	err := utils.Retry(5, 2*time.Second, func() error {
		var err error
		database, err = db.Init(db.Config{
			Driver:             cfg.Database.Driver,
			DSN:                cfg.Database.DSN,
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			LogEnabled:         cfg.Database.LogEnabled,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		})
		return err
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(&domain.Fund{}, &domain.BrokerageRate{}); err != nil {
		logger.Fatal(ctx, "failed to migrate database", "error", err)
	}

	// 5. 初始化消息队列，未配置 broker 时事件发布降级为关闭
	var publisher domain.EventPublisher
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		logger.Warn(ctx, "kafka disabled", "error", err)
	} else {
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer)
	}

	// 6. 初始化仓储与应用服务
	fundRepo := mysql.NewFundRepository(database.DB)

	mode := domain.CoerceStrict
	if cfg.Ingest.LenientNumbers {
		mode = domain.CoerceLenient
	}
	appService := application.NewFundService(fundRepo, publisher, m, spreadsheet.Open, application.Options{
		SkipSheets:  cfg.Ingest.SkipSheets,
		Strategy:    domain.LayoutStrategy(cfg.Ingest.LayoutStrategy),
		Mode:        mode,
		DedupPolicy: domain.DedupPolicy(cfg.Ingest.DedupPolicy),
		ResetSchema: cfg.Ingest.ResetSchema,
	})

	if cfg.Search.RefreshOnStart {
		if err := appService.RefreshIndex(ctx); err != nil {
			logger.Warn(ctx, "initial index build failed, will retry on first search", "error", err)
		}
	}

	// 7. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(middleware.GinRecoveryMiddleware())
	r.Use(middleware.GinLoggingMiddleware())
	r.Use(middleware.GinCORSMiddleware())
	r.Use(middleware.GinRateLimitMiddleware(middleware.NewRateLimiter(100, 50)))
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.HTTPRequestsTotal.Inc()
		m.HTTPRequestDuration.Observe(time.Since(start).Seconds())
	})
	r.MaxMultipartMemory = int64(cfg.HTTP.MaxUploadSize) << 20

	handler := httpserver.NewFundHandler(appService, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	handler.RegisterRoutes(r)

	// 8. 启动服务与优雅关闭
	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g.Go(func() error {
		logger.Info(gctx, "HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(gctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(gctx, "context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
