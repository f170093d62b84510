// Package export writes entity and opportunity snapshots to CSV or XLSX
// files for offline analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fidalli/crm-backend/pkg/analytics"
	"github.com/fidalli/crm-backend/pkg/domain"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Service generates export files under a local directory.
type Service struct {
	dir     string
	printer *message.Printer
}

// NewService creates an export service writing into dir.
func NewService(dir string) *Service {
	return &Service{
		dir: dir,
		// French locale grouping matches how XOF amounts are read
		printer: message.NewPrinter(language.French),
	}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	return format == FormatCSV || format == FormatXLSX
}

// ExportEntities writes the entity collection and returns the file path.
func (s *Service) ExportEntities(entities []domain.Entity, format string) (string, error) {
	path, err := s.filePath("entities", format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatCSV:
		err = s.entitiesCSV(path, entities)
	case FormatXLSX:
		err = s.entitiesExcel(path, entities)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// ExportOpportunities writes the pipeline and returns the file path.
func (s *Service) ExportOpportunities(opportunities []domain.Opportunity, format string) (string, error) {
	path, err := s.filePath("opportunities", format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatCSV:
		err = s.opportunitiesCSV(path, opportunities)
	case FormatXLSX:
		err = s.opportunitiesExcel(path, opportunities)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) filePath(kind, format string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.%s", kind, time.Now().Format("20060102_150405"), format)
	return filepath.Join(s.dir, name), nil
}

func (s *Service) entitiesCSV(path string, entities []domain.Entity) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"ID", "Company Name", "Sector", "Region", "Email", "Phone", "Website",
		"Revenue", "Employees", "Status", "Priority", "Score", "Created At",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entities {
		revenue := ""
		if e.Revenue != nil {
			revenue = strconv.FormatInt(*e.Revenue, 10)
		}
		employees := ""
		if e.Employees != nil {
			employees = strconv.Itoa(*e.Employees)
		}
		row := []string{
			e.ID,
			e.CompanyName,
			e.Sector,
			e.Region,
			e.Email,
			e.Phone,
			e.Website,
			revenue,
			employees,
			string(e.Status),
			string(e.Priority),
			strconv.Itoa(e.Score),
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

func (s *Service) entitiesExcel(path string, entities []domain.Entity) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Entities"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	headers := []string{
		"ID", "Company Name", "Sector", "Region", "Email", "Phone", "Website",
		"Revenue", "Employees", "Status", "Priority", "Score", "Created At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, e := range entities {
		row := rowIdx + 2 // Start from row 2 (after header)
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.CompanyName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Sector)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Region)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), e.Website)
		if e.Revenue != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), *e.Revenue)
		}
		if e.Employees != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), *e.Employees)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), string(e.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), string(e.Priority))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), e.Score)
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), e.CreatedAt.Format(time.RFC3339))
	}

	for col := 'A'; col <= 'M'; col++ {
		f.SetColWidth(sheetName, string(col), string(col), 15)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *Service) opportunitiesCSV(path string, opportunities []domain.Opportunity) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"ID", "Entity ID", "Title", "Stage", "Value", "Probability",
		"Weighted Value", "Requires Approval", "Deadline", "Created At",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, o := range opportunities {
		row := []string{
			o.ID,
			o.EntityID,
			o.Title,
			string(o.Stage),
			strconv.FormatInt(o.Value, 10),
			strconv.Itoa(o.Probability),
			strconv.FormatInt(o.WeightedValue, 10),
			strconv.FormatBool(o.RequiresApproval),
			o.Deadline.Format("2006-01-02"),
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

func (s *Service) opportunitiesExcel(path string, opportunities []domain.Opportunity) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Pipeline"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	headers := []string{
		"ID", "Entity ID", "Title", "Stage", "Value", "Probability",
		"Weighted Value", "Requires Approval", "Deadline", "Created At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, o := range opportunities {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), o.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), o.EntityID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), o.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(o.Stage))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), o.Value)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), o.Probability)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), o.WeightedValue)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), o.RequiresApproval)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), o.Deadline.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), o.CreatedAt.Format(time.RFC3339))
	}

	for col := 'A'; col <= 'J'; col++ {
		f.SetColWidth(sheetName, string(col), string(col), 16)
	}

	// Summary sheet with pipeline totals in XOF
	stats := analytics.OpportunityStatistics(opportunities)
	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	rows := [][2]string{
		{"Total opportunities", strconv.Itoa(stats.Total)},
		{"Won", strconv.Itoa(stats.Won)},
		{"Lost", strconv.Itoa(stats.Lost)},
		{"Total value (XOF)", s.printer.Sprintf("%d", stats.TotalValue)},
		{"Weighted value (XOF)", s.printer.Sprintf("%d", stats.WeightedValue)},
		{"Average probability", strconv.Itoa(stats.AverageProbability) + "%"},
		{"Conversion rate", strconv.Itoa(stats.ConversionRate) + "%"},
		{"Average deal size (XOF)", s.printer.Sprintf("%d", stats.AverageDealSize)},
	}
	for i, r := range rows {
		f.SetCellValue(summary, fmt.Sprintf("A%d", i+1), r[0])
		f.SetCellValue(summary, fmt.Sprintf("B%d", i+1), r[1])
	}
	f.SetColWidth(summary, "A", "B", 28)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
