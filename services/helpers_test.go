package services

import (
	"context"
	"testing"
	"time"

	"lexdesk/db"
	"lexdesk/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testNow is "today" for every service under test
var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type testEnv struct {
	gw        *db.Gateway
	svc       *Services
	docsDir   string
	mailer    *LogMailer
	admin     *Session
	lawyer    *Session
	secretary *Session
}

func setupTestGateway(t *testing.T) *db.Gateway {
	t.Helper()
	gw, err := db.Open(db.Options{Path: "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gw))
	t.Cleanup(func() { gw.Close() })
	return gw
}

// setupEnv wires every service over a fresh in-memory database with one
// logged-in session per role
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gw := setupTestGateway(t)
	env := &testEnv{gw: gw, docsDir: t.TempDir(), mailer: &LogMailer{}}
	env.svc = New(gw, Options{
		Storage:  NewLocalStorage(env.docsDir),
		Throttle: NewLoginThrottle(MaxFailedLogins, FailedLoginWindow),
		Clock:    fixedClock,
		Mailer:   env.mailer,
	})
	env.admin = env.sessionFor(t, "admin", models.RoleAdmin)
	env.lawyer = env.sessionFor(t, "abogado", models.RoleLawyer)
	env.secretary = env.sessionFor(t, "secretaria", models.RoleSecretary)
	return env
}

// sessionFor stores a user with an unusable password hash and opens a session for it
func (e *testEnv) sessionFor(t *testing.T, username, role string) *Session {
	t.Helper()
	email := username + "@estudio.com.ar"
	u := &models.User{
		Username:     username,
		PasswordHash: "not-a-hash",
		FullName:     "Usuario " + username,
		Email:        &email,
		Role:         role,
		Active:       true,
	}
	require.NoError(t, e.svc.Repos.Users.Save(context.Background(), u))
	return NewSession(u, testNow)
}

func (e *testEnv) createClient(t *testing.T, name, dni string) *models.Client {
	t.Helper()
	c := &models.Client{FullName: name}
	if dni != "" {
		c.DNI = &dni
	}
	require.NoError(t, e.svc.Clients.Create(context.Background(), e.lawyer, c))
	return c
}

func (e *testEnv) createCase(t *testing.T, number string, client *models.Client) *models.Case {
	t.Helper()
	c := &models.Case{
		Number:     number,
		Title:      client.FullName + " c/ Gómez s/ daños",
		ClientName: client.FullName,
		ClientID:   &client.ID,
		StartDate:  day(2024, time.January, 10),
	}
	require.NoError(t, e.svc.Cases.Create(context.Background(), e.lawyer, c))
	return c
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func uintPtr(u uint) *uint { return &u }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
