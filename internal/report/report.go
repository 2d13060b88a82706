// Package report renders a business profile as a downloadable document:
// indented JSON or an XLSX workbook.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// JSONDocument renders the profile as indented JSON, sentinels included.
func JSONDocument(p *model.BusinessProfile) ([]byte, error) {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "report: marshal profile")
	}
	return out, nil
}

// Workbook writes the profile as an XLSX workbook with a profile sheet and an
// assessment-history sheet.
func Workbook(p *model.BusinessProfile, w io.Writer) error {
	f := xlsx.NewFile()

	if err := addProfileSheet(f, p); err != nil {
		return err
	}
	if err := addAssessmentSheet(f, p); err != nil {
		return err
	}

	return eris.Wrap(f.Write(w), "report: write workbook")
}

func addProfileSheet(f *xlsx.File, p *model.BusinessProfile) error {
	sheet, err := f.AddSheet("Profil Bisnis")
	if err != nil {
		return eris.Wrap(err, "report: add profile sheet")
	}

	header := sheet.AddRow()
	header.AddCell().Value = "Field"
	header.AddCell().Value = "Value"

	rows := [][2]string{
		{"Company Name", p.CompanyName},
		{"Product Name", p.ProductDetails.Name},
		{"Product Description", p.ProductDetails.Description},
		{"Unique Features", p.ProductDetails.UniqueFeatures},
		{"Product Category", p.ProductCategory},
		{"Production Capacity", fmt.Sprintf("%g %s per %s", p.ProductionCapacity.Amount, p.ProductionCapacity.Unit, p.ProductionCapacity.Timeframe)},
		{"City", p.ProductionLocation.City},
		{"Province", p.ProductionLocation.Province},
		{"Country", p.ProductionLocation.Country},
		{"Business Background", p.BusinessBackground},
		{"Export Experience", p.ExportReadiness.ExportExperience},
		{"Export Goals", p.ExportReadiness.ExportGoals},
		{"Budget for Export", p.ExportReadiness.BudgetForExport},
		{"Timeline Preference", p.ExportReadiness.TimelinePreference},
		{"Export Volume Target", p.ExportReadiness.ExportVolumeTarget},
		{"Target Countries", joinList(p.ExportReadiness.TargetCountries)},
		{"Current Markets", joinList(p.ExportReadiness.CurrentMarkets)},
		{"Main Challenges", joinList(p.ExportReadiness.MainChallenges)},
		{"Certifications Obtained", joinList(p.ExportReadiness.CertificationsObtained)},
		{"Conversation Language", p.ConversationLanguage},
		{"Last Extraction", formatTime(p.ExtractionTimestamp)},
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().Value = r[0]
		row.AddCell().Value = r[1]
	}
	return nil
}

func addAssessmentSheet(f *xlsx.File, p *model.BusinessProfile) error {
	sheet, err := f.AddSheet("Riwayat Analisis")
	if err != nil {
		return eris.Wrap(err, "report: add assessment sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Country", "Score", "Status", "Product", "Category", "Timestamp"} {
		header.AddCell().Value = h
	}

	for _, rec := range p.AssessmentHistory {
		row := sheet.AddRow()
		row.AddCell().Value = rec.Country
		row.AddCell().SetFloat(rec.Score)
		row.AddCell().Value = rec.Status
		row.AddCell().Value = rec.Product
		row.AddCell().Value = rec.Category
		row.AddCell().Value = formatTime(rec.Timestamp)
	}
	return nil
}

func joinList(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
