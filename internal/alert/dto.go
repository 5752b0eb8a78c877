package alert

import (
	"time"

	"github.com/smartworld/smartdesk/internal"
)

type CreateAlertRequest struct {
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience string     `json:"targetAudience"`
	CreatedBy      string     `json:"createdBy"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

func (r CreateAlertRequest) ToAlert() Alert {
	return Alert{
		Title:          r.Title,
		Message:        r.Message,
		Type:           r.Type,
		Priority:       r.Priority,
		TargetAudience: r.TargetAudience,
		CreatedBy:      r.CreatedBy,
		ExpiresAt:      r.ExpiresAt,
	}
}

// UpdateAlertRequest is a partial update. An empty expiresAt string
// removes the expiry.
type UpdateAlertRequest struct {
	Title          *string `json:"title"`
	Message        *string `json:"message"`
	Type           *string `json:"type"`
	Priority       *string `json:"priority"`
	TargetAudience *string `json:"targetAudience"`
	ExpiresAt      *string `json:"expiresAt"`
}

func (r UpdateAlertRequest) ToPatch() (Patch, error) {
	p := Patch{
		Title:          r.Title,
		Message:        r.Message,
		Type:           r.Type,
		Priority:       r.Priority,
		TargetAudience: r.TargetAudience,
	}
	if r.ExpiresAt != nil {
		if *r.ExpiresAt == "" {
			p.ClearExpiry = true
		} else {
			t, err := time.Parse(time.RFC3339, *r.ExpiresAt)
			if err != nil {
				return Patch{}, internal.NewValidationFieldError("expiresAt", "expiresAt must be an RFC 3339 timestamp", internal.ErrCodeInvalidDate)
			}
			p.ExpiresAt = &t
		}
	}
	return p, nil
}

type AlertsResponse struct {
	Alerts []Alert `json:"alerts"`
	Total  int     `json:"total"`
}

type AlertResponse struct {
	Message string `json:"message"`
	Alert   *Alert `json:"alert"`
}
