package chat

import (
	"strings"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// analysisTriggers are the phrases that switch a turn from dialogue to a
// scored readiness assessment.
var analysisTriggers = []string{
	"cek kesiapan ekspor",
	"analisis ekspor",
	"export readiness",
	"siap ekspor",
	"kesiapan ekspor",
	"analisis kesiapan",
}

// DetectAnalysisRequest checks whether the user asked for an export readiness
// assessment and which country they asked about. Requested with an empty
// country is a valid outcome; the caller renders a clarification question.
// Pure string matching, no LLM involved.
func DetectAnalysisRequest(userText string, p *model.BusinessProfile, catalog *Catalog) (bool, string) {
	lower := strings.ToLower(userText)

	requested := false
	for _, trigger := range analysisTriggers {
		if strings.Contains(lower, trigger) {
			requested = true
			break
		}
	}

	country := catalog.Resolve(userText)

	// No country in the message itself: fall back to the first target country
	// gathered earlier in the conversation.
	if requested && country == "" && len(p.ExportReadiness.TargetCountries) > 0 {
		country = p.ExportReadiness.TargetCountries[0]
	}

	return requested, country
}
