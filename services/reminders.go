package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"lexdesk/logger"
	"lexdesk/models"
	"lexdesk/repository"
	"lexdesk/services/i18n"
)

// ReminderResult summarises one reminder run
type ReminderResult struct {
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"` // owner without e-mail or inactive
	Failed  int `json:"failed"`
}

// ReminderService mails event owners once an event's reminder time has come
type ReminderService struct {
	events *repository.EventRepository
	users  *repository.UserRepository
	cases  *repository.CaseRepository
	mailer Mailer
	clock  Clock
}

func NewReminderService(r *Repositories, mailer Mailer, clock Clock) *ReminderService {
	if clock == nil {
		clock = SystemClock
	}
	return &ReminderService{events: r.Events, users: r.Users, cases: r.Cases, mailer: mailer, clock: clock}
}

// SendDue mails every pending event whose reminder is due and has not been sent.
// Events whose owner cannot be mailed are marked sent too so they are not retried on
// every run; delivery failures are left unmarked.
func (s *ReminderService) SendDue(ctx context.Context) (*ReminderResult, error) {
	if err := i18n.EnsureLoaded(); err != nil {
		return nil, err
	}
	now := s.clock()
	due, err := s.events.ListDueReminders(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &ReminderResult{Due: len(due)}
	lang := i18n.GetLocale(ctx)

	for i := range due {
		ev := &due[i]
		owner, err := s.users.FindByID(ctx, ev.OwnerID)
		if err != nil {
			return result, err
		}

		if owner == nil || !owner.Active || owner.Email == nil || *owner.Email == "" {
			result.Skipped++
			logger.L().Warnw("reminder skipped, owner has no e-mail", "event_id", ev.ID, "owner_id", ev.OwnerID)
		} else {
			caseLabel := ""
			if ev.CaseID != nil {
				c, err := s.cases.FindByID(ctx, *ev.CaseID)
				if err != nil {
					return result, err
				}
				if c != nil {
					caseLabel = c.Number + " " + c.Title
				}
			}

			if err := s.mailer.Send(ctx, BuildReminderEmail(lang, owner, ev, caseLabel)); err != nil {
				result.Failed++
				logger.L().Errorw("failed to send reminder", "event_id", ev.ID, "error", err)
				continue
			}
			result.Sent++
		}

		if err := s.events.MarkReminderSent(ctx, ev.ID, now); err != nil {
			return result, err
		}
	}

	logger.L().Infow("reminder run completed",
		"due", result.Due, "sent", result.Sent, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

// BuildReminderEmail creates the reminder for one event
func BuildReminderEmail(lang string, owner *models.User, ev *models.Event, caseLabel string) *Email {
	local := ev.StartsAt.Local()
	args := map[string]interface{}{
		"name":  owner.FullName,
		"title": ev.Title,
		"date":  local.Format("02/01/2006"),
		"time":  local.Format("15:04"),
	}

	lines := []string{
		i18n.Translate(lang, "email.reminder.greeting", args),
		"",
		i18n.Translate(lang, "email.reminder.body", args),
	}
	if ev.Location != nil && *ev.Location != "" {
		lines = append(lines, i18n.Translate(lang, "email.reminder.location", map[string]interface{}{"location": *ev.Location}))
	}
	if caseLabel != "" {
		lines = append(lines, i18n.Translate(lang, "email.reminder.case", map[string]interface{}{"case": caseLabel}))
	}
	lines = append(lines, "", i18n.Translate(lang, "email.reminder.footer"))

	var htmlBody strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		fmt.Fprintf(&htmlBody, "<p>%s</p>\n", html.EscapeString(l))
	}

	return &Email{
		To:       []string{*owner.Email},
		Subject:  i18n.Translate(lang, "email.reminder.subject", args),
		HTMLBody: htmlBody.String(),
		TextBody: strings.Join(lines, "\n"),
	}
}
