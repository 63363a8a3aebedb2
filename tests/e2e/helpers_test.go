//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/carematch-backend/internal/adapter/notify"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	applicationrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/application"
	caregiverrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/caregiver"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres/chatroom"
	jobrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/job"
	messagerepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/message"
	reviewrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/review"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/carematch-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/carematch-backend/internal/auth"
	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
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

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Sent   *recordingSender
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// recordingSender captures delivered notifications.
type recordingSender struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (s *recordingSender) Send(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

// To returns the notifications of kind delivered to userID.
func (s *recordingSender) To(userID uuid.UUID, kind domain.NotificationKind) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Notification
	for _, n := range s.sent {
		if n.Recipient.UserID == userID.String() && n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	sender := &recordingSender{}
	dispatcher := notify.NewDispatcher(logger, sender, config.NotifyConfig{
		Workers:     2,
		QueueSize:   64,
		SendTimeout: time.Second,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dispatcher.Close(ctx)
	})

	// 3. Repositories.
	userRepo := userrepo.New(pool)
	caregiverRepo := caregiverrepo.New(pool)
	jobRepo := jobrepo.New(pool)
	appRepo := applicationrepo.New(pool)
	roomRepo := chatroom.New(pool)
	messageRepo := messagerepo.New(pool)
	reviewRepo := reviewrepo.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	// 5. Services.
	chatService := chat.NewService(logger, roomRepo)
	reviewService := review.NewService(logger, reviewRepo, jobRepo, appRepo, userRepo)
	userService := user.NewService(logger, userRepo, caregiverRepo, reviewService, txm)
	jobService := job.NewService(logger, jobRepo, appRepo, userRepo, dispatcher, txm)
	applicationService := application.NewService(logger, appRepo, jobRepo, userRepo, chatService, dispatcher, txm)
	messageService := message.NewService(logger, roomRepo, messageRepo, userRepo, dispatcher, txm, config.ChatConfig{
		DefaultPageSize:  50,
		MaxPageSize:      100,
		MaxMessageLength: 1000,
	})

	// 6. Router.
	global := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		}),
	)
	router := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, "test-version"),
		Users:        rest.NewUserHandler(logger, userService),
		Jobs:         rest.NewJobHandler(logger, jobService),
		Applications: rest.NewApplicationHandler(logger, applicationService),
		Chat:         rest.NewChatHandler(logger, chatService, messageService),
		Reviews:      rest.NewReviewHandler(logger, reviewService),
		Dashboards:   rest.NewDashboardHandler(logger, dashboard.NewService(userRepo, caregiverRepo, jobService, appRepo)),
	}, global, middleware.Auth(jwtMgr))

	// 7. httptest server.
	srv := httptest.NewServer(router)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Sent:   sender,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// call sends a JSON request and returns status + decoded body.
func (ts *testServer) call(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// errorCode extracts the code from an error envelope.
func errorCode(t *testing.T, result map[string]any) string {
	t.Helper()
	e, ok := result["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", result)
	code, _ := e["code"].(string)
	return code
}

// object extracts a nested object from a response.
func object(t *testing.T, result map[string]any, field string) map[string]any {
	t.Helper()
	v, ok := result[field].(map[string]any)
	require.True(t, ok, "expected %q object in %v", field, result)
	return v
}

// token mints an access token; an empty role means profile not completed.
func (ts *testServer) token(t *testing.T, userID uuid.UUID, role domain.UserRole) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return tok
}

// seedUser inserts a user with a completed profile and returns a token.
func (ts *testServer) seedUser(t *testing.T, role domain.UserRole) (domain.User, string) {
	t.Helper()
	u := testhelper.SeedUser(t, ts.Pool, role)
	return u, ts.token(t, u.ID, role)
}

func jobBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Help with meals and a daily walk",
		"location":    "Seoul Gangnam-gu",
		"careType":    "home",
		"startDate":   time.Now().AddDate(0, 1, 0).Format(time.DateOnly),
		"hourlyRate":  15000,
		"patientInfo": map[string]any{"age": 82, "gender": "female", "condition": "mild dementia"},
	}
}
