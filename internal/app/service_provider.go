package app

import (
	"context"
	"net/http"
	"time"
	accountAPI "vault_backend/internal/api/account"
	adminAPI "vault_backend/internal/api/admin"
	announcementAPI "vault_backend/internal/api/announcement"
	authAPI "vault_backend/internal/api/auth"
	wheelAPI "vault_backend/internal/api/wheel"
	"vault_backend/internal/config"
	"vault_backend/internal/config/env"
	"vault_backend/internal/mailer"
	"vault_backend/internal/metrics"
	"vault_backend/internal/middleware"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/internal/repository/announcement_repo"
	"vault_backend/internal/repository/auth_repo"
	"vault_backend/internal/repository/memory"
	"vault_backend/internal/repository/otp_repo"
	"vault_backend/internal/repository/spin_log_repo"
	"vault_backend/internal/repository/user_repo"
	"vault_backend/internal/repository/wheel_repo"
	"vault_backend/internal/service"
	"vault_backend/internal/service/account"
	"vault_backend/internal/service/admin"
	"vault_backend/internal/service/announcement"
	"vault_backend/internal/service/auth"
	"vault_backend/internal/service/bootstrap"
	"vault_backend/internal/service/wheel"
	"vault_backend/internal/session"
	"vault_backend/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	// Configs
	httpCfg      config.HTTPConfig
	pgConfig     config.PGConfig
	storageCfg   config.StorageConfig
	jwtCfg       config.JWTConfig
	smtpCfg      config.SMTPConfig
	redisCfg     config.RedisConfig
	adminCfg     config.AdminConfig
	rateLimitCfg config.RateLimitConfig
	seedCfg      config.WheelSeedConfig

	// Observability
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	//TXManager
	txManager service.TxManager

	// Database
	dbClient    *pgxpool.Pool
	redisClient *redis.Client

	// Repositories
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	wheelRepo        repository.WheelRepository
	spinLogRepo      repository.SpinLogRepository
	announcementRepo repository.AnnouncementRepository
	otpRepo          repository.OTPRepository
	memUsers         *memory.UserRepo // Общий для user и auth репозиториев в памяти

	mailer mailer.Mailer

	// Services
	authServ         service.AuthService
	accountServ      service.AccountService
	wheelServ        service.WheelService
	announcementServ service.AnnouncementService
	adminServ        service.AdminService
	bootstrapServ    service.BootstrapService

	// Handlers
	authHand         *authAPI.Handler
	accountHand      *accountAPI.Handler
	wheelHand        *wheelAPI.Handler
	announcementHand *announcementAPI.Handler
	adminHand        *adminAPI.Handler

	sessionMonitor *session.Monitor

	// Router
	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) SMTPCfg() config.SMTPConfig {
	if sp.smtpCfg == nil {
		cfg, err := env.NewSMTPConfig()
		if err != nil {
			panic("failed to get smtp config: " + err.Error())
		}
		sp.smtpCfg = cfg
	}
	return sp.smtpCfg
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		sp.redisCfg = env.NewRedisConfig()
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) AdminCfg() config.AdminConfig {
	if sp.adminCfg == nil {
		cfg, err := env.NewAdminConfig()
		if err != nil {
			panic("failed to get admin config: " + err.Error())
		}
		sp.adminCfg = cfg
	}
	return sp.adminCfg
}

func (sp *ServiceProvider) RateLimitCfg() config.RateLimitConfig {
	if sp.rateLimitCfg == nil {
		cfg, err := env.NewRateLimitConfig()
		if err != nil {
			panic("failed to get rate limit config: " + err.Error())
		}
		sp.rateLimitCfg = cfg
	}
	return sp.rateLimitCfg
}

func (sp *ServiceProvider) SeedCfg() config.WheelSeedConfig {
	if sp.seedCfg == nil {
		cfg, err := env.NewWheelSeedConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.seedCfg = cfg
	}
	return sp.seedCfg
}

func (sp *ServiceProvider) memoryStorage() bool {
	return sp.StorageCfg().Driver() == config.StorageMemory
}

// Registry - реестр Prometheus с метриками рантайма
func (sp *ServiceProvider) Registry() *prometheus.Registry {
	if sp.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sp.registry = reg
	}
	return sp.registry
}

func (sp *ServiceProvider) Metrics() *metrics.Metrics {
	if sp.metrics == nil {
		sp.metrics = metrics.MustNewMetrics(sp.Registry())
	}
	return sp.metrics
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		pgCfg := sp.PgConfig()
		poolCfg, err := pgxpool.ParseConfig(pgCfg.DSN())
		if err != nil {
			panic("failed to parse pg dsn: " + err.Error())
		}
		if pgCfg.MaxConns() > 0 {
			poolCfg.MaxConns = pgCfg.MaxConns()
		}
		poolCfg.ConnConfig.ConnectTimeout = pgCfg.ConnectTimeout()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		err = repository.EnsureSchema(ctx, dbc)
		if err != nil {
			panic("failed to apply schema: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) service.TxManager {
	if sp.txManager == nil {
		if sp.memoryStorage() {
			sp.txManager = memory.NewTxManager()
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) memoryUsers() *memory.UserRepo {
	if sp.memUsers == nil {
		sp.memUsers = memory.NewUserRepository()
	}
	return sp.memUsers
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		if sp.memoryStorage() {
			sp.userRepo = sp.memoryUsers()
		} else {
			sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
		}
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		if sp.memoryStorage() {
			sp.authRepo = memory.NewAuthRepository(sp.memoryUsers())
		} else {
			sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
		}
	}
	return sp.authRepo
}

func (sp *ServiceProvider) WheelRepo(ctx context.Context) repository.WheelRepository {
	if sp.wheelRepo == nil {
		if sp.memoryStorage() {
			sp.wheelRepo = memory.NewWheelRepository()
		} else {
			sp.wheelRepo = wheel_repo.NewWheelRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
		}
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) SpinLogRepo(ctx context.Context) repository.SpinLogRepository {
	if sp.spinLogRepo == nil {
		if sp.memoryStorage() {
			sp.spinLogRepo = memory.NewSpinLogRepository()
		} else {
			sp.spinLogRepo = spin_log_repo.NewSpinLogRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
		}
	}
	return sp.spinLogRepo
}

func (sp *ServiceProvider) AnnouncementRepo(ctx context.Context) repository.AnnouncementRepository {
	if sp.announcementRepo == nil {
		if sp.memoryStorage() {
			sp.announcementRepo = memory.NewAnnouncementRepository()
		} else {
			sp.announcementRepo = announcement_repo.NewAnnouncementRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
		}
	}
	return sp.announcementRepo
}

// OTPRepo - Redis, если задан REDIS_URL, иначе LRU в памяти процесса
func (sp *ServiceProvider) OTPRepo(ctx context.Context) repository.OTPRepository {
	if sp.otpRepo == nil {
		if sp.RedisCfg().Enabled() {
			client, err := otp_repo.NewRedisClient(ctx, sp.RedisCfg().URL())
			if err != nil {
				panic("failed to connect to redis: " + err.Error())
			}
			sp.redisClient = client
			sp.otpRepo = otp_repo.NewRedisRepository(client)
			return sp.otpRepo
		}

		repo, err := otp_repo.NewLRURepository(0, time.Now)
		if err != nil {
			panic("failed to create otp cache: " + err.Error())
		}
		sp.otpRepo = repo
	}
	return sp.otpRepo
}

func (sp *ServiceProvider) Mailer() mailer.Mailer {
	if sp.mailer == nil {
		if sp.SMTPCfg().Enabled() {
			sp.mailer = mailer.NewSMTPMailer(sp.SMTPCfg())
		} else {
			logger.L().Warn("SMTP credentials are not set, verification codes will only be logged")
			sp.mailer = mailer.NewLogMailer(logger.Named("mailer"))
		}
	}
	return sp.mailer
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.OTPRepo(ctx),
			sp.Mailer(),
			sp.JWTCfg(),
			sp.SeedCfg().SignupBonus(),
			auth.WithMetrics(sp.Metrics()),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AccountService(ctx context.Context) service.AccountService {
	if sp.accountServ == nil {
		sp.accountServ = account.NewAccountService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.OTPRepo(ctx),
			sp.Mailer(),
			account.WithMetrics(sp.Metrics()),
		)
	}
	return sp.accountServ
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		sp.wheelServ = wheel.NewWheelService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.WheelRepo(ctx),
			sp.SpinLogRepo(ctx),
			wheel.WithMetrics(sp.Metrics()),
		)
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) AnnouncementService(ctx context.Context) service.AnnouncementService {
	if sp.announcementServ == nil {
		sp.announcementServ = announcement.NewAnnouncementService(sp.AnnouncementRepo(ctx), time.Now)
	}
	return sp.announcementServ
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = admin.NewAdminService(sp.UserRepo(ctx))
	}
	return sp.adminServ
}

func (sp *ServiceProvider) BootstrapService(ctx context.Context) service.BootstrapService {
	if sp.bootstrapServ == nil {
		sp.bootstrapServ = bootstrap.NewBootstrapService(
			sp.UserRepo(ctx),
			sp.WheelRepo(ctx),
			sp.AnnouncementRepo(ctx),
			sp.SeedCfg(),
			sp.AdminCfg(),
		)
	}
	return sp.bootstrapServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) AccountHandler(ctx context.Context) *accountAPI.Handler {
	if sp.accountHand == nil {
		sp.accountHand = accountAPI.NewHandler(accountAPI.HandlerDeps{Serv: sp.AccountService(ctx)})
	}
	return sp.accountHand
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{Serv: sp.WheelService(ctx)})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) AnnouncementHandler(ctx context.Context) *announcementAPI.Handler {
	if sp.announcementHand == nil {
		sp.announcementHand = announcementAPI.NewHandler(announcementAPI.HandlerDeps{Serv: sp.AnnouncementService(ctx)})
	}
	return sp.announcementHand
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{
			Admin:        sp.AdminService(ctx),
			Wheel:        sp.WheelService(ctx),
			Announcement: sp.AnnouncementService(ctx),
		})
	}
	return sp.adminHand
}

// SessionMonitor - фоновая проверка возраста сессий
func (sp *ServiceProvider) SessionMonitor(ctx context.Context) *session.Monitor {
	if sp.sessionMonitor == nil {
		m := sp.Metrics()
		sp.sessionMonitor = session.NewMonitor(sp.AuthRepo(ctx), logger.Named("session"),
			session.WithExpireHook(func(_ model.Session, v session.Verdict) {
				m.SessionExpired(v.Kind)
			}),
		)
	}
	return sp.sessionMonitor
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           60 * 15,
		}))
		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.RequestLogger(logger.Named("http")))
		r.Use(chimw.Recoverer)
		r.Use(chimw.Timeout(sp.HTTPCfg().RequestTimeout()))

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Handle("/metrics", promhttp.HandlerFor(sp.Registry(), promhttp.HandlerOpts{}))

		limit := middleware.RateLimit(sp.RateLimitCfg().RPS(), sp.RateLimitCfg().Burst())
		authenticate := middleware.Auth(sp.JWTCfg().AccessTokenSecretKey(), time.Now)

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/api/auth", func(rr chi.Router) {
			rr.With(limit).Post("/send-otp", authHandler.SendOTP)
			rr.Post("/register", authHandler.Register)
			rr.With(limit).Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		r.Get("/api/announcement", sp.AnnouncementHandler(ctx).Get)

		// Player endpoints
		accountHandler := sp.AccountHandler(ctx)
		wheelHandler := sp.WheelHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(authenticate)

			rr.Get("/api/profile", accountHandler.Profile)
			rr.With(limit).Post("/api/profile/email-change", accountHandler.InitiateEmailChange)
			rr.Post("/api/profile/email-change/verify", accountHandler.VerifyEmailChange)

			rr.Route("/api/wheel", func(wr chi.Router) {
				wr.Get("/config", wheelHandler.Config)
				wr.Get("/status", wheelHandler.Status)
				wr.Post("/spin", wheelHandler.Spin)
				wr.Get("/history", wheelHandler.History)
			})
		})

		// Admin endpoints
		adminHandler := sp.AdminHandler(ctx)
		r.Route("/api/admin", func(rr chi.Router) {
			rr.Use(authenticate)
			rr.Use(middleware.AdminOnly)

			rr.Get("/users", adminHandler.Users)
			rr.Post("/users/balance", adminHandler.SetBalance)
			rr.Get("/rewards", adminHandler.Rewards)
			rr.Post("/rewards", adminHandler.UpdateRewards)
			rr.Post("/announcement", adminHandler.UpdateAnnouncement)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает соединения
func (sp *ServiceProvider) Close() {
	if sp.redisClient != nil {
		if err := sp.redisClient.Close(); err != nil {
			logger.L().Warn("failed to close redis client", zap.Error(err))
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
