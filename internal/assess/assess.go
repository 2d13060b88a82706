// Package assess runs scored export readiness assessments for a target
// country against a completed business profile.
package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/langkah-ekspor/exporo/internal/model"
	"github.com/langkah-ekspor/exporo/pkg/anthropic"
)

const assessMaxTokens = 4000

// Market gives the assessment prompt its difficulty and market-size context
// for the target country.
type Market struct {
	Difficulty string
	MarketSize string
}

// CategoryScores breaks the overall score into the four weighted criteria.
type CategoryScores struct {
	RegulatoryCompliance   float64 `json:"regulatory_compliance"`
	MarketViability        float64 `json:"market_viability"`
	DocumentationReadiness float64 `json:"documentation_readiness"`
	CompetitivePositioning float64 `json:"competitive_positioning"`
}

// Assessment is the structured verdict parsed from the model response.
type Assessment struct {
	OverallScore          float64        `json:"overall_score"`
	CategoryScores        CategoryScores `json:"category_scores"`
	ActionItems           []string       `json:"action_items"`
	TimelineEstimate      string         `json:"timeline_estimate"`
	MarketInsights        string         `json:"market_insights"`
	CertificationPriority []string       `json:"certification_priority"`
	CompetitiveAdvantages []string       `json:"competitive_advantages"`
	PotentialChallenges   []string       `json:"potential_challenges"`
	ReadinessLevel        string         `json:"export_readiness_level"`
}

// Result is what a single assessment produces. Record is nil when the model
// answered in prose instead of the requested JSON; the reply is still shown
// but nothing is written to the assessment history.
type Result struct {
	Reply      string
	Record     *model.AssessmentRecord
	Structured *Assessment
}

// Analyzer runs assessments through the Anthropic API.
type Analyzer struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

func NewAnalyzer(client anthropic.Client, llmModel string, timeout time.Duration) *Analyzer {
	return &Analyzer{client: client, model: llmModel, timeout: timeout}
}

// Assess scores the profile's product for export to country.
func (a *Analyzer) Assess(ctx context.Context, p *model.BusinessProfile, country string, market Market) (*Result, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt := buildPrompt(p, country, market)
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: assessMaxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "assess: analyze %s", country)
	}

	raw := strings.TrimSpace(resp.Text())

	var assessment Assessment
	if jerr := json.Unmarshal([]byte(cleanJSON(raw)), &assessment); jerr != nil {
		// Prose answer: show it framed, record nothing.
		return &Result{Reply: renderUnstructured(country, raw)}, nil
	}

	record := &model.AssessmentRecord{
		Country:   country,
		Score:     assessment.OverallScore,
		Status:    assessment.ReadinessLevel,
		Product:   p.ProductDetails.Name,
		Category:  p.ProductCategory,
		Timestamp: time.Now(),
	}
	if record.Status == "" {
		record.Status = "Assessed"
	}

	return &Result{
		Reply:      renderStructured(country, &assessment),
		Record:     record,
		Structured: &assessment,
	}, nil
}

func buildPrompt(p *model.BusinessProfile, country string, market Market) string {
	capacity := fmt.Sprintf("%g %s per %s",
		p.ProductionCapacity.Amount, p.ProductionCapacity.Unit, p.ProductionCapacity.Timeframe)
	location := fmt.Sprintf("%s, %s, Indonesia",
		p.ProductionLocation.City, p.ProductionLocation.Province)

	r := strings.NewReplacer(
		"{target_country}", country,
		"{company_name}", p.CompanyName,
		"{product_name}", p.ProductDetails.Name,
		"{product_category}", p.ProductCategory,
		"{product_description}", p.ProductDetails.Description,
		"{production_capacity}", capacity,
		"{production_location}", location,
		"{market_difficulty}", market.Difficulty,
		"{market_size}", market.MarketSize,
		"{required_certifications}", "Sertifikasi yang diperlukan akan dijelaskan dalam analisis",
	)
	return r.Replace(readinessPrompt)
}

func renderStructured(country string, a *Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 **ANALISIS KESIAPAN EKSPOR - %s**\n\n", country)
	fmt.Fprintf(&b, "📊 **Skor Keseluruhan: %g/100**\n\n", a.OverallScore)
	b.WriteString("📈 **Breakdown per Kategori:**\n")
	fmt.Fprintf(&b, "• Kepatuhan Regulasi: %g/100\n", a.CategoryScores.RegulatoryCompliance)
	fmt.Fprintf(&b, "• Viabilitas Pasar: %g/100\n", a.CategoryScores.MarketViability)
	fmt.Fprintf(&b, "• Kesiapan Dokumentasi: %g/100\n", a.CategoryScores.DocumentationReadiness)
	fmt.Fprintf(&b, "• Posisi Kompetitif: %g/100\n\n", a.CategoryScores.CompetitivePositioning)

	if len(a.ActionItems) > 0 {
		b.WriteString("✅ **Rencana Aksi:**\n")
		for i, item := range a.ActionItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	timeline := a.TimelineEstimate
	if timeline == "" {
		timeline = "Tidak ditentukan"
	}
	fmt.Fprintf(&b, "⏱️ **Estimasi Waktu Persiapan:** %s\n\n", timeline)

	insights := a.MarketInsights
	if insights == "" {
		insights = "Tidak tersedia"
	}
	fmt.Fprintf(&b, "🎯 **Insight Pasar:**\n%s\n\n", insights)

	if len(a.CompetitiveAdvantages) > 0 {
		b.WriteString("💪 **Keunggulan Kompetitif:**\n")
		for _, adv := range a.CompetitiveAdvantages {
			fmt.Fprintf(&b, "• %s\n", adv)
		}
		b.WriteString("\n")
	}

	if len(a.PotentialChallenges) > 0 {
		b.WriteString("⚠️ **Tantangan Potensial:**\n")
		for _, ch := range a.PotentialChallenges {
			fmt.Fprintf(&b, "• %s\n", ch)
		}
		b.WriteString("\n")
	}

	level := a.ReadinessLevel
	if level == "" {
		level = "Tidak dinilai"
	}
	fmt.Fprintf(&b, "🏆 **Status Kesiapan:** %s\n\n", level)
	b.WriteString("*Analisis ini dibuat berdasarkan profil bisnis Anda.*")
	return b.String()
}

func renderUnstructured(country, raw string) string {
	return fmt.Sprintf("🎯 **ANALISIS KESIAPAN EKSPOR - %s**\n\n%s\n\n*Analisis ini dibuat berdasarkan profil bisnis Anda.*", country, raw)
}

// cleanJSON strips markdown fences and extracts the JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}
