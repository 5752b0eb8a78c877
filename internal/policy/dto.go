package policy

type CreatePolicyRequest struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Content       string `json:"content"`
	Version       string `json:"version"`
	EffectiveDate string `json:"effectiveDate"`
	Author        string `json:"author"`
}

func (r CreatePolicyRequest) ToPolicy() Policy {
	return Policy{
		Title:         r.Title,
		Category:      r.Category,
		Content:       r.Content,
		Version:       r.Version,
		EffectiveDate: r.EffectiveDate,
		Author:        r.Author,
	}
}

type UpdatePolicyRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Category      *string `json:"category"`
	Version       *string `json:"version"`
	EffectiveDate *string `json:"effectiveDate"`
}

func (r UpdatePolicyRequest) ToPatch() Patch {
	return Patch{
		Title:         r.Title,
		Content:       r.Content,
		Category:      r.Category,
		Version:       r.Version,
		EffectiveDate: r.EffectiveDate,
	}
}

type PoliciesResponse struct {
	Policies []Policy `json:"policies"`
	Total    int      `json:"total"`
}

type PolicyResponse struct {
	Message string  `json:"message"`
	Policy  *Policy `json:"policy"`
}
