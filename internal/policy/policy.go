package policy

import (
	"time"

	policyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/policy"
)

const (
	CategoryHR    = "hr"
	CategoryIT    = "it"
	CategoryAdmin = "admin"
	CategoryOther = "other"

	DefaultVersion = "1.0"
)

var categories = []string{CategoryHR, CategoryIT, CategoryAdmin, CategoryOther}

type Policy struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Content       string    `json:"content"`
	Version       string    `json:"version"`
	EffectiveDate string    `json:"effectiveDate"`
	Author        string    `json:"author,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Policy) ToDataModel() *policyDatamodel.Policy {
	return &policyDatamodel.Policy{
		ID:            p.ID,
		Title:         p.Title,
		Category:      p.Category,
		Content:       p.Content,
		Version:       p.Version,
		EffectiveDate: p.EffectiveDate,
		Author:        p.Author,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDataModel(p *policyDatamodel.Policy) *Policy {
	return &Policy{
		ID:            p.ID,
		Title:         p.Title,
		Category:      p.Category,
		Content:       p.Content,
		Version:       p.Version,
		EffectiveDate: p.EffectiveDate,
		Author:        p.Author,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// Patch carries the fields of a partial update; nil fields are left alone.
type Patch struct {
	Title         *string
	Content       *string
	Category      *string
	Version       *string
	EffectiveDate *string
}

func (p Patch) apply(pol *Policy) {
	if p.Title != nil {
		pol.Title = *p.Title
	}
	if p.Content != nil {
		pol.Content = *p.Content
	}
	if p.Category != nil {
		pol.Category = *p.Category
	}
	if p.Version != nil {
		pol.Version = *p.Version
	}
	if p.EffectiveDate != nil {
		pol.EffectiveDate = *p.EffectiveDate
	}
}

func samplePolicies() []Policy {
	return []Policy{
		{
			ID:            "policy_001",
			Title:         "Employee Code of Conduct",
			Category:      CategoryHR,
			Content:       "Guidelines for professional behavior and conduct",
			Version:       DefaultVersion,
			EffectiveDate: "2024-01-01",
		},
		{
			ID:            "policy_002",
			Title:         "IT Security Policy",
			Category:      CategoryIT,
			Content:       "Information technology security guidelines and procedures",
			Version:       DefaultVersion,
			EffectiveDate: "2024-01-01",
		},
	}
}
