package notification

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationMilestoneReached NotificationType = "milestone_reached"
	NotificationTierAdvanced     NotificationType = "tier_advanced"
	NotificationDailyCheckIn     NotificationType = "daily_checkin"
	NotificationTest             NotificationType = "test"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
	StatusRead    NotificationStatus = "read"
)

type Notification struct {
	ID            uuid.UUID            `json:"id" db:"id"`
	UserID        uuid.UUID            `json:"user_id" db:"user_id"`
	Type          NotificationType     `json:"type" db:"type"`
	Priority      NotificationPriority `json:"priority" db:"priority"`
	Status        NotificationStatus   `json:"status" db:"status"`
	Title         string               `json:"title" db:"title"`
	Body          string               `json:"body" db:"body"`
	Data          map[string]any       `json:"data" db:"data"`
	ActorID       *uuid.UUID           `json:"actor_id,omitempty" db:"actor_id"`
	ScheduledFor  *time.Time           `json:"scheduled_for,omitempty" db:"scheduled_for"`
	SentAt        *time.Time           `json:"sent_at,omitempty" db:"sent_at"`
	ReadAt        *time.Time           `json:"read_at,omitempty" db:"read_at"`
	FailedAt      *time.Time           `json:"failed_at,omitempty" db:"failed_at"`
	FailureReason *string              `json:"failure_reason,omitempty" db:"failure_reason"`
	RetryCount    int                  `json:"retry_count" db:"retry_count"`
	ActionURL     *string              `json:"action_url,omitempty" db:"action_url"`
	CreatedAt     time.Time            `json:"created_at" db:"created_at"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty" db:"expires_at"`
}

type DeviceToken struct {
	Token    string    `json:"token"`
	Platform string    `json:"platform"`
	AddedAt  time.Time `json:"added_at"`
	LastUsed time.Time `json:"last_used"`
}

type NotificationPreferences struct {
	ID                      uuid.UUID       `json:"id" db:"id"`
	UserID                  uuid.UUID       `json:"user_id" db:"user_id"`
	PushEnabled             bool            `json:"push_enabled" db:"push_enabled"`
	EmailEnabled            bool            `json:"email_enabled" db:"email_enabled"`
	InAppEnabled            bool            `json:"in_app_enabled" db:"in_app_enabled"`
	EnabledTypes            map[string]bool `json:"enabled_types" db:"enabled_types"`
	QuietHoursEnabled       bool            `json:"quiet_hours_enabled" db:"quiet_hours_enabled"`
	QuietHoursStart         *string         `json:"quiet_hours_start,omitempty" db:"quiet_hours_start"`
	QuietHoursEnd           *string         `json:"quiet_hours_end,omitempty" db:"quiet_hours_end"`
	QuietHoursTimezone      *string         `json:"quiet_hours_timezone,omitempty" db:"quiet_hours_timezone"`
	MaxNotificationsPerHour int             `json:"max_notifications_per_hour" db:"max_notifications_per_hour"`
	MaxNotificationsPerDay  int             `json:"max_notifications_per_day" db:"max_notifications_per_day"`
	DeviceTokens            []DeviceToken   `json:"device_tokens" db:"device_tokens"`
	CreatedAt               time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at" db:"updated_at"`
}

// NotificationTemplate renders one notification type. Placeholders use
// {{key}} syntax and are filled from the request's Data map. Templates are
// fixed in code; there is no admin surface for editing them.
type NotificationTemplate struct {
	Type            NotificationType
	TitleTemplate   string
	BodyTemplate    string
	DefaultPriority NotificationPriority
	TTLHours        int
}

var templates = map[NotificationType]NotificationTemplate{
	NotificationMilestoneReached: {
		Type:            NotificationMilestoneReached,
		TitleTemplate:   "Milestone reached: {{milestone_title}}",
		BodyTemplate:    "Day {{days_clean}} without {{addiction_title}}. {{milestone_description}}",
		DefaultPriority: PriorityHigh,
		TTLHours:        72,
	},
	NotificationTierAdvanced: {
		Type:            NotificationTierAdvanced,
		TitleTemplate:   "New badge earned",
		BodyTemplate:    "{{tier_label}} for quitting {{addiction_title}}. Keep going!",
		DefaultPriority: PriorityNormal,
		TTLHours:        72,
	},
	NotificationDailyCheckIn: {
		Type:            NotificationDailyCheckIn,
		TitleTemplate:   "How are you feeling today?",
		BodyTemplate:    "A quick journal entry helps you stay on track.",
		DefaultPriority: PriorityLow,
		TTLHours:        24,
	},
	NotificationTest: {
		Type:            NotificationTest,
		TitleTemplate:   "Test notification",
		BodyTemplate:    "Push notifications are working.",
		DefaultPriority: PriorityNormal,
		TTLHours:        1,
	},
}

// TemplateFor returns the template for a notification type.
func TemplateFor(t NotificationType) (NotificationTemplate, bool) {
	tmpl, ok := templates[t]
	return tmpl, ok
}
