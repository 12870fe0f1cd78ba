package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"learnlog/internal/app"
	"learnlog/internal/config"
	"learnlog/internal/model"
	mysqlClient "learnlog/internal/platform/mysql"
	rabbitmqClient "learnlog/internal/platform/rabbitmq"
	redisClient "learnlog/internal/platform/redis"
	"learnlog/internal/repository"
	"learnlog/internal/worker"
)

type App struct {
	Config      *config.Config
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	AuditWorker *worker.AuditWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Entry{}, &model.AuditEvent{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	if err := seedDefaultUser(mysqlDB, cfg.Seed); err != nil {
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, redisClient.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	auditRepo := repository.NewAuditEventRepository(mysqlDB)
	auditWorker := worker.NewAuditWorker(mqConn, auditRepo, cfg.RabbitMQ.AuditQueue)
	if err := auditWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start audit worker failed: %w", err)
	}

	return &App{
		Config:      cfg,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		AuditWorker: auditWorker,
		StartedAt:   time.Now(),
	}, nil
}

// seedDefaultUser creates the configured default user on first boot. An
// already-seeded database is skipped silently.
func seedDefaultUser(db *gorm.DB, seed config.SeedConfig) error {
	if seed.Email == "" || seed.Password == "" {
		return nil
	}

	authService := app.NewAuthService(repository.NewUserRepository(db), "", 0)
	_, err := authService.Register(app.RegisterInput{
		Email:    seed.Email,
		Password: seed.Password,
	})
	if errors.Is(err, app.ErrEmailExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed default user failed: %w", err)
	}
	log.Printf("seeded default user %s", seed.Email)
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
