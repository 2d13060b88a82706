package model

import "time"

// NotSpecified is the sentinel for a string field the conversation has not
// covered yet. The extraction prompts instruct the model to emit it verbatim.
const NotSpecified = "Not specified"

// SentinelStrings are the reserved placeholder values that never count as
// real data. Matched case-sensitively by the merge engine.
var SentinelStrings = []string{NotSpecified, "extraction_error", "unclear", "Belum diisi"}

// ProductDetails describes the product a business wants to export.
type ProductDetails struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	UniqueFeatures string `json:"unique_features"`
}

// ProductionCapacity is the reported output volume, e.g. 100 unit per bulan.
type ProductionCapacity struct {
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	Timeframe string  `json:"timeframe"`
}

// ProductionLocation is where the product is made.
type ProductionLocation struct {
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
}

// ExportReadiness holds the sparse export-related signals gathered over a
// conversation. Every field starts at its sentinel/empty default.
type ExportReadiness struct {
	TargetCountries        []string `json:"target_countries"`
	ExportExperience       string   `json:"export_experience"`
	CurrentMarkets         []string `json:"current_markets"`
	ExportGoals            string   `json:"export_goals"`
	BudgetForExport        string   `json:"budget_for_export"`
	TimelinePreference     string   `json:"timeline_preference"`
	MainChallenges         []string `json:"main_challenges"`
	CertificationsObtained []string `json:"certifications_obtained"`
	ExportVolumeTarget     string   `json:"export_volume_target"`
}

// AssessmentRecord is one scored readiness assessment for a target country.
// At most one live record exists per country; re-assessing replaces it.
type AssessmentRecord struct {
	Country   string    `json:"country"`
	Score     float64   `json:"score"`
	Status    string    `json:"status"`
	Product   string    `json:"product"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// BusinessProfile is the canonical accumulated record for a session. It is
// created at sentinel defaults and mutated only by the merge engine.
type BusinessProfile struct {
	CompanyName          string             `json:"company_name"`
	ProductDetails       ProductDetails     `json:"product_details"`
	ProductionCapacity   ProductionCapacity `json:"production_capacity"`
	ProductCategory      string             `json:"product_category"`
	ProductionLocation   ProductionLocation `json:"production_location"`
	BusinessBackground   string             `json:"business_background"`
	ExportReadiness      ExportReadiness    `json:"export_readiness"`
	AssessmentHistory    []AssessmentRecord `json:"assessment_history"`
	ExtractionTimestamp  time.Time          `json:"extraction_timestamp"`
	ConversationLanguage string             `json:"conversation_language"`
}

// NewDefaultProfile returns a profile with every field at its sentinel
// default. Country and language defaults match the product's audience.
func NewDefaultProfile() *BusinessProfile {
	return &BusinessProfile{
		CompanyName: NotSpecified,
		ProductDetails: ProductDetails{
			Name:           NotSpecified,
			Description:    NotSpecified,
			UniqueFeatures: NotSpecified,
		},
		ProductionCapacity: ProductionCapacity{
			Amount:    0,
			Unit:      NotSpecified,
			Timeframe: NotSpecified,
		},
		ProductCategory: NotSpecified,
		ProductionLocation: ProductionLocation{
			City:     NotSpecified,
			Province: NotSpecified,
			Country:  "Indonesia",
		},
		BusinessBackground: NotSpecified,
		ExportReadiness: ExportReadiness{
			ExportExperience:   NotSpecified,
			ExportGoals:        NotSpecified,
			BudgetForExport:    NotSpecified,
			TimelinePreference: NotSpecified,
			ExportVolumeTarget: NotSpecified,
		},
		ConversationLanguage: "Indonesian",
	}
}

// Clone returns a deep copy of the profile. Slices are copied so a merge on
// the clone never aliases the original's collections.
func (p *BusinessProfile) Clone() *BusinessProfile {
	out := *p
	out.ExportReadiness.TargetCountries = append([]string(nil), p.ExportReadiness.TargetCountries...)
	out.ExportReadiness.CurrentMarkets = append([]string(nil), p.ExportReadiness.CurrentMarkets...)
	out.ExportReadiness.MainChallenges = append([]string(nil), p.ExportReadiness.MainChallenges...)
	out.ExportReadiness.CertificationsObtained = append([]string(nil), p.ExportReadiness.CertificationsObtained...)
	out.AssessmentHistory = append([]AssessmentRecord(nil), p.AssessmentHistory...)
	return &out
}
