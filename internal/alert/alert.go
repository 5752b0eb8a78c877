package alert

import (
	"time"

	alertDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/alert"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	TypeGeneral      = "general"
	TypeSystem       = "system"
	TypeAnnouncement = "announcement"

	AudienceAll   = "all"
	AudienceAdmin = "admin"
	AudienceUser  = "user"

	DefaultTitle   = "Alert"
	DefaultCreator = "admin"
)

var (
	priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	types      = []string{TypeGeneral, TypeSystem, TypeAnnouncement}
	audiences  = []string{AudienceAll, AudienceAdmin, AudienceUser}
)

type Alert struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience string     `json:"targetAudience"`
	CreatedBy      string     `json:"createdBy"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Active reports whether the alert has not yet expired at now.
func (a *Alert) Active(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

// ToDataModel stores the expiry in UTC so string-compared SQLite
// timestamps order correctly.
func (a *Alert) ToDataModel() *alertDatamodel.Alert {
	var expires *time.Time
	if a.ExpiresAt != nil {
		t := a.ExpiresAt.UTC()
		expires = &t
	}
	return &alertDatamodel.Alert{
		ID:             a.ID,
		Title:          a.Title,
		Message:        a.Message,
		Type:           a.Type,
		Priority:       a.Priority,
		TargetAudience: a.TargetAudience,
		CreatedBy:      a.CreatedBy,
		ExpiresAt:      expires,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromDataModel(a *alertDatamodel.Alert) *Alert {
	return &Alert{
		ID:             a.ID,
		Title:          a.Title,
		Message:        a.Message,
		Type:           a.Type,
		Priority:       a.Priority,
		TargetAudience: a.TargetAudience,
		CreatedBy:      a.CreatedBy,
		ExpiresAt:      a.ExpiresAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// Patch carries the fields of a partial update; nil fields are left alone.
type Patch struct {
	Title          *string
	Message        *string
	Type           *string
	Priority       *string
	TargetAudience *string
	ExpiresAt      *time.Time
	ClearExpiry    bool
}

func (p Patch) apply(a *Alert) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Message != nil {
		a.Message = *p.Message
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.TargetAudience != nil {
		a.TargetAudience = *p.TargetAudience
	}
	if p.ClearExpiry {
		a.ExpiresAt = nil
	} else if p.ExpiresAt != nil {
		t := *p.ExpiresAt
		a.ExpiresAt = &t
	}
}
