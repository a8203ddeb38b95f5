package agentapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/config"
	"github.com/GovThePPL/candid-sub000/internal/infra/authtoken"
	"github.com/GovThePPL/candid-sub000/internal/repo/candidhttp"
	pgrepo "github.com/GovThePPL/candid-sub000/internal/repo/postgres"
	redrepo "github.com/GovThePPL/candid-sub000/internal/repo/redis"
	auditsvc "github.com/GovThePPL/candid-sub000/internal/services/audit"
	dispatchsvc "github.com/GovThePPL/candid-sub000/internal/services/dispatch"
	queuesvc "github.com/GovThePPL/candid-sub000/internal/services/queue"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	queue      *queuesvc.Controller
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	identity, err := authtoken.Parse(cfg.API.AccessToken)
	switch {
	case err != nil:
		log.Warn("cannot read moderator identity from access token, claim ledger disabled", zap.Error(err))
	case identity.Expired(time.Now()):
		log.Warn("access token is expired, remote calls will be rejected",
			zap.String("moderator_id", identity.ModeratorID),
			zap.Time("expires_at", identity.ExpiresAt),
		)
	default:
		log.Info("moderator identity loaded",
			zap.String("moderator_id", identity.ModeratorID),
			zap.String("username", identity.Username),
		)
	}

	client, err := candidhttp.NewClient(cfg.API.BaseURL, cfg.API.AccessToken, cfg.API.Timeout)
	if err != nil {
		return nil, fmt.Errorf("create candid client: %w", err)
	}
	moderationRepo := candidhttp.NewModerationRepo(client, log.Named("candid"))

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, audit journal disabled", zap.Error(err))
	} else {
		pool = p
	}
	auditRepo := pgrepo.NewAuditRepo(pool)
	if err := auditRepo.EnsureSchema(ctx); err != nil {
		log.Warn("audit journal schema init failed", zap.Error(err))
	}
	auditService := auditsvc.NewService(auditRepo, identity.ModeratorID)

	var redisClient *goredis.Client
	var ledger queuesvc.ClaimLedger
	if cfg.Redis.Addr != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		pingErr := redisClient.Ping(pingCtx).Err()
		cancel()
		if pingErr != nil {
			log.Warn("redis init failed, claim ledger disabled", zap.Error(pingErr))
		} else {
			ledger = redrepo.NewClaimRepo(redisClient, cfg.Queue.ClaimTTL)
		}
	}

	controller := queuesvc.NewController(moderationRepo, queuesvc.Options{
		ModeratorID:  identity.ModeratorID,
		Ledger:       ledger,
		ClaimTimeout: cfg.API.Timeout,
		Logger:       log.Named("queue"),
	})
	dispatcher := dispatchsvc.NewDispatcher(moderationRepo, controller, auditService, cfg.API.Timeout, log.Named("dispatch"))

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)
	RegisterRoutes(r, Dependencies{
		Queue:        controller,
		Dispatcher:   dispatcher,
		AuditService: auditService,
		Logger:       log,
		Config:       cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		queue:      controller,
		httpRouter: r,
	}, nil
}

// Run releases a claim left over from a previous run, optionally loads the queue
// and serves the local API until Shutdown.
func (a *App) Run(ctx context.Context) error {
	if released := a.queue.ReleaseOrphanedClaim(ctx); released != "" {
		a.logger.Info("startup released orphaned claim", zap.String("report_id", released))
	}
	if a.cfg.Queue.LoadOnStart {
		if err := a.queue.Load(ctx); err != nil {
			a.logger.Warn("initial queue load failed, waiting for refresh", zap.Error(err))
		}
	}

	a.logger.Info("moderation agent started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}

	a.queue.Wait()
	if released := a.queue.ReleaseHeldClaim(ctx); released != "" {
		a.logger.Info("released held claim", zap.String("report_id", released))
	}

	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
