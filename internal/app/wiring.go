package app

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/carematch-backend/internal/adapter/notify"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	applicationrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/application"
	caregiverrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/caregiver"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres/chatroom"
	jobrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/job"
	messagerepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/message"
	reviewrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/review"
	userrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/carematch-backend/internal/auth"
	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/service/application"
	"github.com/heartmarshall/carematch-backend/internal/service/chat"
	"github.com/heartmarshall/carematch-backend/internal/service/dashboard"
	"github.com/heartmarshall/carematch-backend/internal/service/job"
	"github.com/heartmarshall/carematch-backend/internal/service/message"
	"github.com/heartmarshall/carematch-backend/internal/service/review"
	"github.com/heartmarshall/carematch-backend/internal/service/user"
	"github.com/heartmarshall/carematch-backend/internal/transport/middleware"
	"github.com/heartmarshall/carematch-backend/internal/transport/rest"
)

type services struct {
	users        *user.Service
	jobs         *job.Service
	applications *application.Service
	chat         *chat.Service
	messages     *message.Service
	reviews      *review.Service
	dashboards   *dashboard.Service
}

func newServices(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool, dispatcher *notify.Dispatcher) *services {
	tx := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	caregivers := caregiverrepo.New(pool)
	jobs := jobrepo.New(pool)
	apps := applicationrepo.New(pool)
	rooms := chatroom.New(pool)
	messages := messagerepo.New(pool)
	reviews := reviewrepo.New(pool)

	chatSvc := chat.NewService(logger, rooms)
	reviewSvc := review.NewService(logger, reviews, jobs, apps, users)
	jobSvc := job.NewService(logger, jobs, apps, users, dispatcher, tx)

	return &services{
		users:        user.NewService(logger, users, caregivers, reviewSvc, tx),
		jobs:         jobSvc,
		applications: application.NewService(logger, apps, jobs, users, chatSvc, dispatcher, tx),
		chat:         chatSvc,
		messages:     message.NewService(logger, rooms, messages, users, dispatcher, tx, cfg.Chat),
		reviews:      reviewSvc,
		dashboards:   dashboard.NewService(users, caregivers, jobSvc, apps),
	}
}

// newHTTPHandler builds the router with the global middleware chain. The
// returned limiter must be stopped on shutdown.
func newHTTPHandler(
	logger *slog.Logger,
	cfg *config.Config,
	svcs *services,
	pool *pgxpool.Pool,
	sink *notificationSink,
) (http.Handler, *middleware.RateLimiter) {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	health := rest.NewHealthHandler(pool, BuildVersion())
	if sink.stream != nil {
		health.WithComponent("redis", sink.stream)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	global := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
	)

	handlers := rest.Handlers{
		Health:       health,
		Users:        rest.NewUserHandler(logger, svcs.users),
		Jobs:         rest.NewJobHandler(logger, svcs.jobs),
		Applications: rest.NewApplicationHandler(logger, svcs.applications),
		Chat:         rest.NewChatHandler(logger, svcs.chat, svcs.messages),
		Reviews:      rest.NewReviewHandler(logger, svcs.reviews),
		Dashboards:   rest.NewDashboardHandler(logger, svcs.dashboards),
	}

	return rest.NewRouter(handlers, global, middleware.Auth(jwtManager)), limiter
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
