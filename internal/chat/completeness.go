package chat

import "github.com/langkah-ekspor/exporo/internal/model"

// Completeness summarizes how much of the required profile is filled in.
type Completeness struct {
	Percentage    float64  `json:"percentage"`
	IsComplete    bool     `json:"is_complete"`
	Completed     int      `json:"completed_fields"`
	Total         int      `json:"total_fields"`
	MissingFields []string `json:"missing_fields"`
}

// CheckCompleteness evaluates the five fields a readiness assessment needs.
// It gates the persona switch: profile building until complete, export
// strategy after.
func CheckCompleteness(p *model.BusinessProfile) Completeness {
	checks := []struct {
		field string
		ok    bool
	}{
		{"company_name", p.CompanyName != model.NotSpecified},
		{"product_name", p.ProductDetails.Name != model.NotSpecified},
		{"product_category", p.ProductCategory != model.NotSpecified},
		{"production_capacity", p.ProductionCapacity.Amount > 0},
		{"production_location", p.ProductionLocation.City != model.NotSpecified},
	}

	c := Completeness{Total: len(checks), MissingFields: []string{}}
	for _, check := range checks {
		if check.ok {
			c.Completed++
		} else {
			c.MissingFields = append(c.MissingFields, check.field)
		}
	}
	c.Percentage = float64(c.Completed) / float64(c.Total) * 100
	c.IsComplete = c.Completed == c.Total
	return c
}
