package export

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fidalli/crm-backend/pkg/domain"
)

func int64p(v int64) *int64 { return &v }
func intp(v int) *int       { return &v }

func sampleEntities() []domain.Entity {
	return []domain.Entity{
		{
			ID:          "ent-1",
			CompanyName: "Sahel Logistics",
			Sector:      "transport",
			Region:      "Dakar",
			Revenue:     int64p(120_000_000),
			Employees:   intp(140),
			Status:      domain.StatusClient,
			Priority:    domain.PriorityHigh,
			Score:       100,
			CreatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "ent-2",
			CompanyName: "Teranga Foods",
			Status:      domain.StatusProspect,
			Priority:    domain.PriorityMedium,
			Score:       25,
			CreatedAt:   time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func sampleOpportunities() []domain.Opportunity {
	return []domain.Opportunity{
		{
			ID:               "opp-1",
			EntityID:         "ent-1",
			Title:            "Fleet tracking rollout",
			Stage:            domain.StageWon,
			Value:            60_000_000,
			Probability:      100,
			WeightedValue:    60_000_000,
			RequiresApproval: true,
			Deadline:         time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			CreatedAt:        time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:            "opp-2",
			EntityID:      "ent-2",
			Title:         "ERP audit",
			Stage:         domain.StageProposal,
			Value:         8_000_000,
			Probability:   40,
			WeightedValue: 3_200_000,
			Deadline:      time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportEntitiesCSV(t *testing.T) {
	svc := NewService(t.TempDir())

	path, err := svc.ExportEntities(sampleEntities(), FormatCSV)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, "Company Name", records[0][1])
	assert.Equal(t, "Sahel Logistics", records[1][1])
	assert.Equal(t, "120000000", records[1][7])
	assert.Equal(t, "100", records[1][11])

	// Absent revenue and employees stay blank
	assert.Equal(t, "", records[2][7])
	assert.Equal(t, "", records[2][8])
}

func TestExportOpportunitiesCSV(t *testing.T) {
	svc := NewService(t.TempDir())

	path, err := svc.ExportOpportunities(sampleOpportunities(), FormatCSV)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Weighted Value", records[0][6])
	assert.Equal(t, "60000000", records[1][4])
	assert.Equal(t, "true", records[1][7])
	assert.Equal(t, "3200000", records[2][6])
}

func TestExportOpportunitiesExcel(t *testing.T) {
	svc := NewService(t.TempDir())

	path, err := svc.ExportOpportunities(sampleOpportunities(), FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Pipeline", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Fleet tracking rollout", title)

	// Summary sheet carries the pipeline totals
	label, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Total opportunities", label)

	total, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewService(t.TempDir())

	_, err := svc.ExportEntities(nil, "pdf")
	assert.Error(t, err)
	assert.False(t, ValidFormat("pdf"))
	assert.True(t, ValidFormat(FormatCSV))
	assert.True(t, ValidFormat(FormatXLSX))
}
