package factory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"emphub/internal/api"
	"emphub/internal/config"
	"emphub/internal/database"
	"emphub/internal/domain"
	"emphub/internal/repository"
	"emphub/internal/repository/memory"
	"emphub/internal/service"
	"emphub/internal/validation"
	"emphub/pkg/cache"
	dbconn "emphub/pkg/database"
	"emphub/pkg/hasher"
	"emphub/pkg/logger"
	redisclient "emphub/pkg/redis"
	"emphub/pkg/tracing"
)

const Version = "1.0.0"

// AppFactory builds every long-lived resource once and owns their shutdown.
type AppFactory struct {
	config *config.Config
	logger logger.Logger

	connectionManager *dbconn.ConnectionManager
	redisClient       *redis.Client
	cacheManager      *cache.Manager
	shutdownTracing   tracing.ShutdownFunc

	userRepository     domain.UserRepository
	employeeRepository domain.EmployeeRepository

	accountService  domain.AccountService
	employeeService domain.EmployeeService

	checkers map[string]api.Checker
}

func NewFactory(ctx context.Context) (*AppFactory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

func New(ctx context.Context, cfg *config.Config) (*AppFactory, error) {
	log := logger.New(logger.LogLevel(cfg.LogLevel), os.Stdout, cfg.IsDevelopment())

	f := &AppFactory{
		config:   cfg,
		logger:   log,
		checkers: make(map[string]api.Checker),
	}

	shutdown, err := tracing.Setup(ctx, tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	f.shutdownTracing = shutdown

	if err := f.initRepositories(ctx); err != nil {
		_ = f.Close(ctx)
		return nil, err
	}
	f.initCache(ctx)
	if err := f.initServices(); err != nil {
		_ = f.Close(ctx)
		return nil, err
	}

	return f, nil
}

func (f *AppFactory) initRepositories(ctx context.Context) error {
	switch f.config.Store.Driver {
	case config.StoreDriverMemory:
		f.logger.Warn("Using in-memory store; data is lost on restart", nil)
		f.userRepository = memory.NewUserStore(memory.WithUniqueEmail())
		f.employeeRepository = memory.NewEmployeeStore(memory.WithUniqueEmail())
		f.checkers["store"] = api.CheckerFunc(func(context.Context) error { return nil })
		return nil

	case config.StoreDriverMongo:
		cm, err := dbconn.NewConnectionManager(ctx, dbconn.Config{
			URI:            f.config.Mongo.URI,
			Database:       f.config.Mongo.Database,
			ConnectTimeout: f.config.Mongo.ConnectTimeout,
			AppName:        f.config.Tracing.ServiceName,
		}, f.logger)
		if err != nil {
			return err
		}
		f.connectionManager = cm
		f.checkers["mongodb"] = cm

		if f.config.Mongo.ApplyIndexes {
			if err := database.NewMigrationService(cm.Database(), f.logger).RunMigrations(ctx); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
		}

		f.userRepository = repository.NewUserRepository(cm.Database(), f.logger)
		f.employeeRepository = repository.NewEmployeeRepository(cm.Database(), f.logger)
		return nil

	default:
		return fmt.Errorf("unknown store driver %q", f.config.Store.Driver)
	}
}

// initCache leaves the cache disabled when Redis is unreachable at startup.
func (f *AppFactory) initCache(ctx context.Context) {
	if !f.config.CacheEnabled() {
		return
	}

	client, err := redisclient.NewClient(ctx, redisclient.Options{
		Addr:     f.config.Redis.Addr,
		Password: f.config.Redis.Password,
		DB:       f.config.Redis.DB,
	})
	if err != nil {
		f.logger.Warn("Redis unavailable, employee cache disabled", map[string]interface{}{"error": err.Error()})
		return
	}

	f.redisClient = client
	f.cacheManager = cache.NewManager(cache.NewRedisCache(client, f.logger, "emphub"), f.logger)
	f.checkers["redis"] = f.cacheManager
}

func (f *AppFactory) initServices() error {
	h, err := hasher.New(f.config.Security.PasswordHasher, f.config.Security.BcryptCost)
	if err != nil {
		return err
	}
	v := validation.New()

	f.accountService = service.NewAccountService(f.userRepository, h, v, f.logger)

	var employees domain.EmployeeService = service.NewEmployeeService(f.employeeRepository, v, f.logger)
	if f.cacheManager != nil {
		employees = service.NewCachedEmployeeService(employees, f.cacheManager, f.config.Redis.CacheTTL, f.logger)
	}
	f.employeeService = employees

	return nil
}

func (f *AppFactory) Handler() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Accounts:       f.accountService,
		Employees:      f.employeeService,
		Checkers:       f.checkers,
		Logger:         f.logger,
		MetricsEnabled: f.config.Metrics.Enabled,
		Version:        Version,
	})
}

// Close releases resources in reverse order of creation.
func (f *AppFactory) Close(ctx context.Context) error {
	var errs []error

	if f.redisClient != nil {
		if err := f.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if f.connectionManager != nil {
		if err := f.connectionManager.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo disconnect: %w", err))
		}
	}
	if f.shutdownTracing != nil {
		if err := f.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetAccountService() domain.AccountService {
	return f.accountService
}

func (f *AppFactory) GetEmployeeService() domain.EmployeeService {
	return f.employeeService
}
