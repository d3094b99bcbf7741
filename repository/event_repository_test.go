package repository

import (
	"context"
	"testing"
	"time"

	"lexdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(title string, startsAt time.Time, reminder int) *models.Event {
	return &models.Event{
		Title:           title,
		StartsAt:        startsAt,
		DurationMinutes: models.DefaultEventDurationMinutes,
		Type:            models.EventTypeHearing,
		Status:          models.EventStatusPending,
		ReminderMinutes: reminder,
		Color:           models.EventTypeColor(models.EventTypeHearing),
		OwnerID:         1,
	}
}

func TestEventRepositoryOrderingAndStatus(t *testing.T) {
	gw := setupTestGateway(t)
	repo := NewEventRepository(gw)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	late := newEvent("late", base.Add(48*time.Hour), 60)
	early := newEvent("early", base, 60)
	zero := newEvent("zero duration", base.Add(time.Hour), 0)
	zero.DurationMinutes = 0
	for _, e := range []*models.Event{late, early, zero} {
		require.NoError(t, repo.Save(ctx, e))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "early", all[0].Title)
	assert.Equal(t, "zero duration", all[1].Title)
	assert.Equal(t, 0, all[1].DurationMinutes)
	assert.Equal(t, 0, all[1].ReminderMinutes)

	require.NoError(t, repo.UpdateStatus(ctx, early.ID, models.EventStatusCompleted))
	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	n, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	upcoming, err := repo.ListUpcoming(ctx, base, 1)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "zero duration", upcoming[0].Title)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, models.EventStatusCanceled), ErrNotFound)
}

func TestEventRepositoryDueReminders(t *testing.T) {
	gw := setupTestGateway(t)
	repo := NewEventRepository(gw)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	due := newEvent("due", now.Add(2*time.Hour), 24*60)
	notYet := newEvent("not yet", now.Add(3*24*time.Hour), 24*60)
	past := newEvent("already started", now.Add(-time.Hour), 24*60)
	sent := newEvent("sent", now.Add(time.Hour), 24*60)
	canceled := newEvent("canceled", now.Add(time.Hour), 24*60)
	canceled.Status = models.EventStatusCanceled
	for _, e := range []*models.Event{due, notYet, past, sent, canceled} {
		require.NoError(t, repo.Save(ctx, e))
	}
	require.NoError(t, repo.MarkReminderSent(ctx, sent.ID, now))

	list, err := repo.ListDueReminders(ctx, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, due.ID, list[0].ID)

	got, err := repo.FindByID(ctx, sent.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReminderSentAt)
	assert.True(t, now.Equal(*got.ReminderSentAt))
}

func TestEventRepositorySearch(t *testing.T) {
	gw := setupTestGateway(t)
	repo := NewEventRepository(gw)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	a := newEvent("Audiencia preliminar", base, 60)
	a.CaseID = uintPtr(7)
	a.Location = strPtr("Tribunales, sala 4")
	b := newEvent("Reunión con cliente", base.Add(24*time.Hour), 60)
	b.OwnerID = 2
	for _, e := range []*models.Event{a, b} {
		require.NoError(t, repo.Save(ctx, e))
	}

	res, err := repo.Search(ctx, "sala", EventFilter{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, a.ID, res[0].ID)

	res, err = repo.Search(ctx, "", EventFilter{OwnerID: uintPtr(2)})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, b.ID, res[0].ID)

	from := base.Add(time.Hour)
	res, err = repo.Search(ctx, "", EventFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, res, 1)

	byCase, err := repo.ListByCase(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, byCase, 1)
}

func TestEventRepositoryDueRemindersWithZonedClock(t *testing.T) {
	gw := setupTestGateway(t)
	repo := NewEventRepository(gw)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	due := newEvent("due", now.Add(time.Hour), 24*60)
	started := newEvent("started", now.Add(-2*time.Hour), 24*60)
	require.NoError(t, repo.Save(ctx, due))
	require.NoError(t, repo.Save(ctx, started))

	for _, zone := range []*time.Location{
		time.FixedZone("UTC+2", 2*60*60),
		time.FixedZone("ART", -3*60*60),
	} {
		t.Run(zone.String(), func(t *testing.T) {
			list, err := repo.ListDueReminders(ctx, now.In(zone))
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, due.ID, list[0].ID)
		})
	}

	require.NoError(t, repo.MarkReminderSent(ctx, due.ID, now.In(time.FixedZone("ART", -3*60*60))))
	list, err := repo.ListDueReminders(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, list)
}
