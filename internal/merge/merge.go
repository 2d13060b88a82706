package merge

import (
	"time"

	"go.uber.org/zap"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// Apply merges an extracted fragment into the profile field by field, then
// stamps the extraction timestamp. A field only changes when the candidate
// value is meaningful and either the stored value is not, or the candidate is
// more detailed. Unknown keys and type-mismatched values are ignored, so a
// malformed fragment degrades to a timestamp-only update.
func Apply(p *model.BusinessProfile, fragment map[string]any) {
	for key, val := range fragment {
		switch key {
		case "company_name":
			mergeString(&p.CompanyName, val)
		case "product_category":
			mergeString(&p.ProductCategory, val)
		case "business_background":
			mergeString(&p.BusinessBackground, val)
		case "conversation_language":
			mergeString(&p.ConversationLanguage, val)
		case "product_details":
			if m, ok := val.(map[string]any); ok {
				mergeString(&p.ProductDetails.Name, m["name"])
				mergeString(&p.ProductDetails.Description, m["description"])
				mergeString(&p.ProductDetails.UniqueFeatures, m["unique_features"])
			} else {
				logMismatch(key, val)
			}
		case "production_capacity":
			if m, ok := val.(map[string]any); ok {
				mergeNumber(&p.ProductionCapacity.Amount, m["amount"])
				mergeString(&p.ProductionCapacity.Unit, m["unit"])
				mergeString(&p.ProductionCapacity.Timeframe, m["timeframe"])
			} else {
				logMismatch(key, val)
			}
		case "production_location":
			if m, ok := val.(map[string]any); ok {
				mergeString(&p.ProductionLocation.City, m["city"])
				mergeString(&p.ProductionLocation.Province, m["province"])
				mergeString(&p.ProductionLocation.Country, m["country"])
			} else {
				logMismatch(key, val)
			}
		case "export_readiness":
			if m, ok := val.(map[string]any); ok {
				applyReadiness(&p.ExportReadiness, m)
			} else {
				logMismatch(key, val)
			}
		case "assessment_history":
			applyAssessments(p, val)
		case "extraction_timestamp":
			// Excluded from merge policy; stamped below.
		default:
			zap.L().Debug("merge: unmapped fragment key", zap.String("key", key))
		}
	}

	p.ExtractionTimestamp = time.Now().UTC()
}

func applyReadiness(r *model.ExportReadiness, m map[string]any) {
	for key, val := range m {
		switch key {
		case "target_countries":
			mergeStringList(&r.TargetCountries, val)
		case "current_markets":
			mergeStringList(&r.CurrentMarkets, val)
		case "main_challenges":
			mergeStringList(&r.MainChallenges, val)
		case "certifications_obtained":
			mergeStringList(&r.CertificationsObtained, val)
		case "export_experience":
			mergeString(&r.ExportExperience, val)
		case "export_goals":
			mergeString(&r.ExportGoals, val)
		case "budget_for_export":
			mergeString(&r.BudgetForExport, val)
		case "timeline_preference":
			mergeString(&r.TimelinePreference, val)
		case "export_volume_target":
			mergeString(&r.ExportVolumeTarget, val)
		default:
			zap.L().Debug("merge: unmapped readiness key", zap.String("key", key))
		}
	}
}

func applyAssessments(p *model.BusinessProfile, val any) {
	items, ok := val.([]any)
	if !ok {
		logMismatch("assessment_history", val)
		return
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := decodeAssessment(m)
		if rec.Country == "" {
			continue
		}
		UpsertAssessment(p, rec)
	}
}

func decodeAssessment(m map[string]any) model.AssessmentRecord {
	var rec model.AssessmentRecord
	if s, ok := m["country"].(string); ok && Meaningful(s) {
		rec.Country = s
	}
	if f, ok := toFloat64(m["score"]); ok {
		rec.Score = f
	}
	rec.Status, _ = m["status"].(string)
	rec.Product, _ = m["product"].(string)
	rec.Category, _ = m["category"].(string)
	if ts, ok := m["timestamp"].(string); ok {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return rec
}

// UpsertAssessment replaces any existing record for the same country and
// appends the new one: latest wins per country, no field-level comparison.
func UpsertAssessment(p *model.BusinessProfile, rec model.AssessmentRecord) {
	if rec.Country == "" {
		return
	}
	kept := p.AssessmentHistory[:0]
	for _, r := range p.AssessmentHistory {
		if r.Country != rec.Country {
			kept = append(kept, r)
		}
	}
	p.AssessmentHistory = append(kept, rec)
}

func mergeString(dst *string, val any) {
	s, ok := val.(string)
	if !ok {
		if val != nil {
			logMismatch("string field", val)
		}
		return
	}
	if !Meaningful(s) {
		return
	}
	if !Meaningful(*dst) || MoreDetailed(s, *dst) {
		*dst = s
	}
}

func mergeNumber(dst *float64, val any) {
	f, ok := toFloat64(val)
	if !ok {
		if val != nil {
			logMismatch("number field", val)
		}
		return
	}
	// Numbers are always meaningful, so the only upgrade path is the
	// strictly-larger-positive rule: a reported capacity never shrinks.
	if f > *dst && f > 0 {
		*dst = f
	}
}

func mergeStringList(dst *[]string, val any) {
	var items []string
	switch l := val.(type) {
	case []string:
		items = l
	case []any:
		for _, v := range l {
			if s, ok := v.(string); ok && s != "" {
				items = append(items, s)
			}
		}
	default:
		if val != nil {
			logMismatch("list field", val)
		}
		return
	}
	if len(items) == 0 {
		return
	}
	// The longer extraction replaces the field wholesale; element-wise union
	// would accumulate duplicates from a non-deterministic extractor.
	if len(items) > len(*dst) {
		*dst = append([]string(nil), items...)
	}
}

func logMismatch(field string, val any) {
	zap.L().Debug("merge: type mismatch, keeping existing value",
		zap.String("field", field),
		zap.Any("candidate", val),
	)
}
