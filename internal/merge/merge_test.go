package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// normalize zeroes the timestamp so profiles can be compared structurally.
func normalize(p *model.BusinessProfile) model.BusinessProfile {
	out := *p.Clone()
	out.ExtractionTimestamp = time.Time{}
	return out
}

func TestApply_FillsSentinelFields(t *testing.T) {
	p := model.NewDefaultProfile()

	Apply(p, map[string]any{
		"company_name": "CV Jati Sejahtera",
		"production_capacity": map[string]any{
			"amount":    float64(100),
			"unit":      "unit",
			"timeframe": "bulan",
		},
	})

	assert.Equal(t, "CV Jati Sejahtera", p.CompanyName)
	assert.Equal(t, float64(100), p.ProductionCapacity.Amount)
	assert.Equal(t, "unit", p.ProductionCapacity.Unit)
	assert.Equal(t, "bulan", p.ProductionCapacity.Timeframe)
	assert.False(t, p.ExtractionTimestamp.IsZero())
}

func TestApply_SentinelFragmentIsNoOp(t *testing.T) {
	p := model.NewDefaultProfile()
	p.CompanyName = "CV Jati Sejahtera"
	before := normalize(p)

	Apply(p, map[string]any{
		"company_name":     "Not specified",
		"product_category": "",
		"product_details": map[string]any{
			"name": "unclear",
		},
	})

	assert.Equal(t, before, normalize(p))
}

func TestApply_EmptyFragmentOnlyStampsTimestamp(t *testing.T) {
	p := model.NewDefaultProfile()
	p.CompanyName = "CV Jati Sejahtera"
	before := normalize(p)

	Apply(p, map[string]any{})

	assert.Equal(t, before, normalize(p))
	assert.False(t, p.ExtractionTimestamp.IsZero())
}

func TestApply_LongerDescriptionReplaces(t *testing.T) {
	p := model.NewDefaultProfile()
	p.ProductDetails.Description = "Meja kayu"

	Apply(p, map[string]any{
		"product_details": map[string]any{
			"description": "Meja makan kayu jati minimalis buatan tangan",
		},
	})

	assert.Equal(t, "Meja makan kayu jati minimalis buatan tangan", p.ProductDetails.Description)
}

func TestApply_ShorterDescriptionKept(t *testing.T) {
	p := model.NewDefaultProfile()
	p.ProductDetails.Description = "Meja makan kayu jati minimalis buatan tangan"

	Apply(p, map[string]any{
		"product_details": map[string]any{
			"description": "Meja",
		},
	})

	assert.Equal(t, "Meja makan kayu jati minimalis buatan tangan", p.ProductDetails.Description)
}

func TestApply_CapacityNeverDecreases(t *testing.T) {
	p := model.NewDefaultProfile()

	Apply(p, map[string]any{"production_capacity": map[string]any{"amount": float64(100)}})
	require.Equal(t, float64(100), p.ProductionCapacity.Amount)

	Apply(p, map[string]any{"production_capacity": map[string]any{"amount": float64(50)}})
	assert.Equal(t, float64(100), p.ProductionCapacity.Amount)

	Apply(p, map[string]any{"production_capacity": map[string]any{"amount": float64(150)}})
	assert.Equal(t, float64(150), p.ProductionCapacity.Amount)
}

func TestApply_Idempotent(t *testing.T) {
	fragment := map[string]any{
		"company_name":     "CV Jati Sejahtera",
		"product_category": "Furniture",
		"product_details": map[string]any{
			"name":        "Meja makan",
			"description": "Meja makan kayu jati",
		},
		"export_readiness": map[string]any{
			"target_countries": []any{"Malaysia", "Singapura"},
		},
	}

	p := model.NewDefaultProfile()
	Apply(p, fragment)
	once := normalize(p)

	Apply(p, fragment)
	assert.Equal(t, once, normalize(p))
}

func TestApply_ListsReplaceWholesaleWhenLonger(t *testing.T) {
	p := model.NewDefaultProfile()
	p.ExportReadiness.MainChallenges = []string{"logistik"}

	// Same length: existing kept, no union.
	Apply(p, map[string]any{
		"export_readiness": map[string]any{"main_challenges": []any{"sertifikasi"}},
	})
	assert.Equal(t, []string{"logistik"}, p.ExportReadiness.MainChallenges)

	// Longer list replaces the field wholesale.
	Apply(p, map[string]any{
		"export_readiness": map[string]any{"main_challenges": []any{"sertifikasi", "logistik"}},
	})
	assert.Equal(t, []string{"sertifikasi", "logistik"}, p.ExportReadiness.MainChallenges)
}

func TestApply_TypeMismatchKeepsExisting(t *testing.T) {
	p := model.NewDefaultProfile()
	p.CompanyName = "CV Jati Sejahtera"

	Apply(p, map[string]any{
		"company_name":        float64(42),
		"production_capacity": "a lot",
		"assessment_history":  "none",
	})

	assert.Equal(t, "CV Jati Sejahtera", p.CompanyName)
	assert.Empty(t, p.AssessmentHistory)
}

func TestApply_UnknownKeysIgnored(t *testing.T) {
	p := model.NewDefaultProfile()
	before := normalize(p)

	Apply(p, map[string]any{"favorite_color": "blue"})

	assert.Equal(t, before, normalize(p))
}

func TestApply_TimestampMonotonic(t *testing.T) {
	p := model.NewDefaultProfile()
	Apply(p, map[string]any{})
	first := p.ExtractionTimestamp
	Apply(p, map[string]any{})
	assert.False(t, p.ExtractionTimestamp.Before(first))
}

func TestUpsertAssessment_LatestWinsPerCountry(t *testing.T) {
	p := model.NewDefaultProfile()

	UpsertAssessment(p, model.AssessmentRecord{Country: "Malaysia", Score: 60, Status: "Needs Preparation"})
	UpsertAssessment(p, model.AssessmentRecord{Country: "Singapura", Score: 70, Status: "Needs Preparation"})
	UpsertAssessment(p, model.AssessmentRecord{Country: "Malaysia", Score: 85, Status: "Ready"})

	require.Len(t, p.AssessmentHistory, 2)
	var malaysia *model.AssessmentRecord
	for i := range p.AssessmentHistory {
		if p.AssessmentHistory[i].Country == "Malaysia" {
			malaysia = &p.AssessmentHistory[i]
		}
	}
	require.NotNil(t, malaysia)
	assert.Equal(t, float64(85), malaysia.Score)
	assert.Equal(t, "Ready", malaysia.Status)
}

func TestApply_AssessmentHistoryFragmentUpserts(t *testing.T) {
	p := model.NewDefaultProfile()
	UpsertAssessment(p, model.AssessmentRecord{Country: "Malaysia", Score: 60})

	Apply(p, map[string]any{
		"assessment_history": []any{
			map[string]any{
				"country":   "Malaysia",
				"score":     float64(85),
				"status":    "Ready",
				"timestamp": "2026-08-01T10:00:00Z",
			},
			map[string]any{"country": "Not specified", "score": float64(10)},
		},
	})

	require.Len(t, p.AssessmentHistory, 1)
	assert.Equal(t, float64(85), p.AssessmentHistory[0].Score)
	assert.Equal(t, 2026, p.AssessmentHistory[0].Timestamp.Year())
}

func TestApply_ReadinessStringsUpgrade(t *testing.T) {
	p := model.NewDefaultProfile()

	Apply(p, map[string]any{
		"export_readiness": map[string]any{
			"export_experience": "Beginner",
			"export_goals":      "Not specified",
		},
	})
	assert.Equal(t, "Beginner", p.ExportReadiness.ExportExperience)
	assert.Equal(t, model.NotSpecified, p.ExportReadiness.ExportGoals)

	Apply(p, map[string]any{
		"export_readiness": map[string]any{
			"export_experience": "Beginner, pernah kirim sampel ke Malaysia",
		},
	})
	assert.Equal(t, "Beginner, pernah kirim sampel ke Malaysia", p.ExportReadiness.ExportExperience)
}
