package repository

import (
	"testing"
	"time"

	"lexdesk/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupTestGateway(t *testing.T) *db.Gateway {
	t.Helper()
	gw, err := db.Open(db.Options{Path: "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gw))
	t.Cleanup(func() { gw.Close() })
	return gw
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func uintPtr(u uint) *uint { return &u }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
