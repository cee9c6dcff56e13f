package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/db/memory"
	myPostgresRepo "github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/db/postgres"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/db/redis"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/handler"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/app/auth/password"
	authsvc "github.com/Miraines/MoonyAndStarry/tag-service/internal/app/auth/service"
	tagsvc "github.com/Miraines/MoonyAndStarry/tag-service/internal/app/tag/service"
	usersvc "github.com/Miraines/MoonyAndStarry/tag-service/internal/app/user/service"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/repo"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/db"
	lg "github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/server"
	"golang.org/x/sync/errgroup"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	zapLog := lg.FromEnv()
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := db.Migrate(gdb, zapLog); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	health := map[string]handler.HealthCheck{"database": sqlDB.PingContext}

	var tokenRepo repo.TokenRepo
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		redisRepo := myRedisRepo.NewRedisTokenRepo(redisCli)
		health["redis"] = redisRepo.Ping
		tokenRepo = redisRepo
		zapLog.Info("refresh tokens stored in redis", zap.String("addr", cfg.RedisAddress))
	} else {
		tokenRepo = memory.NewTokenRepo(memory.DefaultCapacity, cfg.RefreshTokenTTL)
		zapLog.Warn("REDIS_ADDRESS not set, refresh tokens kept in memory")
	}

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}
	validate := validator.New()
	userRepo := myPostgresRepo.NewPostgresUserRepo(gdb)
	tagRepo := myPostgresRepo.NewPostgresTagRepo(gdb)

	h := handler.New(
		authsvc.New(userRepo, tokenRepo, jwtUtil, password.NewArgon2idHasher(nil, cfg.PasswordPepper), cfg, validate),
		usersvc.New(userRepo, validate),
		tagsvc.New(tagRepo, validate),
		zapLog,
		health,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(h, handler.RouterConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
		Registry:         reg,
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg.HTTPAddress, router, zapLog)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
		return
	}
	zapLog.Info("shutdown complete")
}
