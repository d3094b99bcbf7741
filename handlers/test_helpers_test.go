package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"lexdesk/config"
	"lexdesk/db"
	"lexdesk/models"
	"lexdesk/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testPassword = "clave-segura-1"

type testServer struct {
	e        *echo.Echo
	svc      *services.Services
	sessions *services.SessionStore
	mailer   *services.LogMailer
}

func setupTestDB(t *testing.T) *db.Gateway {
	t.Helper()
	// Unique shared memory name isolates each test
	gw, err := db.Open(db.Options{Path: "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gw))
	t.Cleanup(func() { gw.Close() })
	return gw
}

// setupServer wires the full API over a fresh database with one user per role
func setupServer(t *testing.T) *testServer {
	t.Helper()
	gw := setupTestDB(t)
	cfg := &config.Config{Environment: "development", SessionTTL: time.Hour, MaxUploadSizeMB: 1}
	mailer := &services.LogMailer{}
	svc := services.New(gw, services.Options{
		Storage:       services.NewLocalStorage(t.TempDir()),
		MaxUploadSize: cfg.MaxUploadSize(),
		Throttle:      services.NewLoginThrottle(services.MaxFailedLogins, services.FailedLoginWindow),
		Mailer:        mailer,
	})
	sessions := services.NewSessionStore(cfg.SessionTTL)

	hash, err := services.HashPassword(testPassword)
	require.NoError(t, err)
	for _, u := range []struct{ username, role string }{
		{"admin", models.RoleAdmin},
		{"abogado", models.RoleLawyer},
		{"secretaria", models.RoleSecretary},
	} {
		email := u.username + "@estudio.com.ar"
		require.NoError(t, svc.Repos.Users.Save(context.Background(), &models.User{
			Username:     u.username,
			PasswordHash: hash,
			FullName:     "Usuario " + u.username,
			Email:        &email,
			Role:         u.role,
			Active:       true,
		}))
	}

	return &testServer{
		e:        NewServer(NewAPI(svc, sessions, cfg)),
		svc:      svc,
		sessions: sessions,
		mailer:   mailer,
	}
}

// do sends a JSON request; body may be nil
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.RemoteAddr = "192.0.2.10:40000"
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// login returns a bearer token for username
func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, rec, &body)
	return body
}

// createClient posts a client and returns its ID
func (s *testServer) createClient(t *testing.T, token, name string) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/clients", token, map[string]interface{}{"full_name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c models.Client
	decode(t, rec, &c)
	return c.ID
}

func (s *testServer) createCase(t *testing.T, token, number string, clientID uint) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/cases", token, map[string]interface{}{
		"number":     number,
		"title":      "Pérez c/ Gómez s/ daños",
		"client_id":  clientID,
		"start_date": "2024-01-10T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c models.Case
	decode(t, rec, &c)
	return c.ID
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
