package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/application/claim/usecases"
	apppermission "github.com/claimdesk/claimdesk/internal/application/permission"
	repaymentUsecases "github.com/claimdesk/claimdesk/internal/application/repayment/usecases"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/infrastructure/auth"
	"github.com/claimdesk/claimdesk/internal/infrastructure/cache"
	"github.com/claimdesk/claimdesk/internal/infrastructure/config"
	"github.com/claimdesk/claimdesk/internal/infrastructure/email"
	infraPermission "github.com/claimdesk/claimdesk/internal/infrastructure/permission"
	"github.com/claimdesk/claimdesk/internal/infrastructure/ratelimit"
	"github.com/claimdesk/claimdesk/internal/infrastructure/repository"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/middleware"
	sharedConfig "github.com/claimdesk/claimdesk/internal/shared/config"
	"github.com/claimdesk/claimdesk/internal/shared/db"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/services/markdown"
)

// Container wires infrastructure, use cases, handlers and middlewares.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	jwtSvc        *auth.JWTService
	enforcer      *infraPermission.Enforcer
	permissionSvc *apppermission.Service
	renderer      markdown.Renderer

	claimRepo claim.Repository
	auditRepo claim.AuditRepository
	numbers   *repository.ClaimNumberGenerator

	claimHandler       *handlers.ClaimHandler
	claimImportHandler *handlers.ClaimImportHandler
	permissionHandler  *handlers.PermissionHandler
	repaymentHandler   *handlers.RepaymentHandler
	healthHandler      *handlers.HealthHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

func NewContainer(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:   gin.New(),
		db:       gdb,
		cfg:      cfg,
		log:      log,
		renderer: markdown.NewRenderer(),
	}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	if err := c.initPermissions(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initClaims()
	c.initHandlers()

	return c, nil
}

// ============================================================
// Section 1: Infrastructure - Redis, Auth, Repositories
// ============================================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg

	if cfg.Redis.Enabled {
		client, err := initRedis(ctx, cfg)
		if err != nil {
			return err
		}
		c.redis = client
		c.log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.Audience)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)

	if c.redis != nil {
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), c.log)
	}

	c.claimRepo = repository.NewClaimRepository(c.db, c.log)
	c.auditRepo = repository.NewClaimAuditRepository(c.db)
	c.numbers = repository.NewClaimNumberGenerator(c.db, cfg.Claims.NumberPrefix)
	return nil
}

func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// ============================================================
// Section 2: Permissions - Policy store, Cache, Service
// ============================================================

func (c *Container) initPermissions(ctx context.Context) error {
	enforcer, err := infraPermission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	var permCache apppermission.Cache = apppermission.NoopCache()
	if c.redis != nil {
		permCache = cache.NewPermissionCache(c.redis, time.Duration(c.cfg.Redis.TTLSeconds)*time.Second)
	}
	c.permissionSvc = apppermission.NewService(enforcer, permCache, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.permissionSvc, c.log)

	return LoadPermissions(ctx, c.permissionSvc, c.cfg.Permissions, c.log)
}

// LoadPermissions loads the permission table, seeding role grants from the
// configured table file when asked to or when the store holds none.
func LoadPermissions(ctx context.Context, svc *apppermission.Service, cfg sharedConfig.PermissionsConfig, log logger.Interface) error {
	if !cfg.SeedOnStart {
		if err := svc.Load(ctx); err != nil {
			return err
		}
		if len(svc.Table().Roles()) > 0 {
			return nil
		}
		log.Infow("policy store has no role grants, seeding from table file", "path", cfg.TablePath)
	}

	table, err := infraPermission.LoadTableFile(cfg.TablePath)
	if err != nil {
		return err
	}
	if err := svc.Seed(ctx, table); err != nil {
		return err
	}
	log.Infow("permission table seeded", "path", cfg.TablePath, "roles", len(table.Roles()))
	return nil
}

// ============================================================
// Section 3: Claims - Use cases, Notifications
// ============================================================

func (c *Container) initClaims() {
	cfg := c.cfg
	log := c.log

	var notifier usecases.Notifier = usecases.NoopNotifier()
	if cfg.Email.Enabled {
		smtp := email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
		notifier = email.NewClaimNotifier(smtp, c.renderer, cfg.Email.FinanceTeam, log)
	}

	authorizer := claim.NewAuthorizer(c.permissionSvc)
	txManager := db.NewTransactionManager(c.db)

	registerClaimUC := usecases.NewRegisterClaimUseCase(c.claimRepo, c.numbers, cfg.Claims.Currency, log)
	getClaimUC := usecases.NewGetClaimUseCase(c.claimRepo, c.renderer, log)
	listClaimsUC := usecases.NewListClaimsUseCase(c.claimRepo, log)
	transitionClaimUC := usecases.NewTransitionClaimUseCase(
		c.claimRepo, c.auditRepo, txManager, authorizer, notifier, c.renderer, log,
	)
	bulkTransitionUC := usecases.NewBulkTransitionUseCase(transitionClaimUC, cfg.Claims.BulkConcurrency, log)
	availableActionsUC := usecases.NewAvailableActionsUseCase(c.claimRepo, authorizer, log)
	claimHistoryUC := usecases.NewClaimHistoryUseCase(c.claimRepo, c.auditRepo, log)

	c.claimHandler = handlers.NewClaimHandler(
		registerClaimUC, getClaimUC, listClaimsUC, transitionClaimUC,
		bulkTransitionUC, availableActionsUC, claimHistoryUC, log,
	)
	c.claimImportHandler = handlers.NewClaimImportHandler(
		usecases.NewImportClaimsUseCase(c.claimRepo, c.numbers, log), log,
	)
}

// ============================================================
// Section 4: Remaining handlers
// ============================================================

func (c *Container) initHandlers() {
	projectScheduleUC := repaymentUsecases.NewProjectScheduleUseCase(c.cfg.Claims.Currency, c.cfg.Biz.Locale, c.log)

	c.repaymentHandler = handlers.NewRepaymentHandler(projectScheduleUC, c.log)
	c.permissionHandler = handlers.NewPermissionHandler(c.permissionSvc, c.log)
	c.healthHandler = handlers.NewHealthHandler(c.db, c.redis)
}

// Shutdown releases connections owned by the container. The database
// handle belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
