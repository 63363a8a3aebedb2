package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/carematch-backend/internal/transport/middleware"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	jobs     *jobServiceMock
	apps     *applicationServiceMock
	rooms    *roomListerMock
	messages *messageServiceMock
	reviews  *reviewServiceMock
	users    *userServiceMock
	dash     *dashboardServiceMock
	router   http.Handler
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithAuth(t, passThrough)
}

func newTestAPIWithAuth(t *testing.T, auth middleware.Middleware) *testAPI {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := &testAPI{
		jobs:     &jobServiceMock{},
		apps:     &applicationServiceMock{},
		rooms:    &roomListerMock{},
		messages: &messageServiceMock{},
		reviews:  &reviewServiceMock{},
		users:    &userServiceMock{},
		dash:     &dashboardServiceMock{},
	}
	api.router = NewRouter(Handlers{
		Health:       NewHealthHandler(&dbPingerMock{}, "test"),
		Users:        NewUserHandler(log, api.users),
		Jobs:         NewJobHandler(log, api.jobs),
		Applications: NewApplicationHandler(log, api.apps),
		Chat:         NewChatHandler(log, api.rooms, api.messages),
		Reviews:      NewReviewHandler(log, api.reviews),
		Dashboards:   NewDashboardHandler(log, api.dash),
	}, passThrough, auth)
	return api
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Error
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(a *testAPI, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
