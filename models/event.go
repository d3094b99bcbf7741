package models

import (
	"time"
)

// Event type constants
const (
	EventTypeHearing  = "AUDIENCIA"
	EventTypeDeadline = "VENCIMIENTO"
	EventTypeMeeting  = "REUNION"
	EventTypeReminder = "RECORDATORIO"
	EventTypeOther    = "OTRO"
)

// Event status constants
const (
	EventStatusPending   = "PENDIENTE"
	EventStatusCompleted = "COMPLETADO"
	EventStatusCanceled  = "CANCELADO"
)

// Defaults applied to new events
const (
	DefaultEventDurationMinutes = 60
	DefaultEventReminderMinutes = 1440
)

// eventTypeColors maps each event type to its predefined calendar color
var eventTypeColors = map[string]string{
	EventTypeHearing:  "#E74C3C",
	EventTypeDeadline: "#F39C12",
	EventTypeMeeting:  "#3498DB",
	EventTypeReminder: "#9B59B6",
	EventTypeOther:    "#95A5A6",
}

var EventTypes = []string{
	EventTypeHearing,
	EventTypeDeadline,
	EventTypeMeeting,
	EventTypeReminder,
	EventTypeOther,
}

var EventStatuses = []string{
	EventStatusPending,
	EventStatusCompleted,
	EventStatusCanceled,
}

// Event is an agenda entry, optionally tied to a case
type Event struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	StartsAt        time.Time `gorm:"not null;index" json:"starts_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Type            string    `gorm:"size:20;not null" json:"type"`
	CaseID          *uint     `gorm:"index" json:"case_id,omitempty"`
	Location        *string   `gorm:"size:255" json:"location,omitempty"`
	Status          string    `gorm:"size:20;not null;default:PENDIENTE" json:"status"`
	ReminderMinutes int       `gorm:"not null" json:"reminder_minutes"`
	Color           string    `gorm:"size:7;not null" json:"color"`
	OwnerID         uint      `gorm:"not null;index" json:"owner_id"`

	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}

// EndsAt returns the end of the event
func (e *Event) EndsAt() time.Time {
	return e.StartsAt.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// RemindAt returns the moment the reminder is due
func (e *Event) RemindAt() time.Time {
	return e.StartsAt.Add(-time.Duration(e.ReminderMinutes) * time.Minute)
}

// IsPending checks if the event is still pending
func (e *Event) IsPending() bool {
	return e.Status == EventStatusPending
}

// IsValidEventType checks if the type is valid
func IsValidEventType(t string) bool {
	_, ok := eventTypeColors[t]
	return ok
}

// IsValidEventStatus checks if the status is valid
func IsValidEventStatus(status string) bool {
	return contains(EventStatuses, status)
}

// EventTypeColor returns the predefined color for an event type
func EventTypeColor(t string) string {
	if c, ok := eventTypeColors[t]; ok {
		return c
	}
	return eventTypeColors[EventTypeOther]
}
