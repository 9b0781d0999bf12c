// Package export writes billing history to spreadsheet files. It
// serves both the ad hoc "export history" action and the automatic
// day-rollover archive.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/glowdesk/salonpos-api/internal/domain/repository"
)

const sheetName = "Billing History"

var headerRow = []interface{}{
	"Bill Number", "Date", "Customer Name", "Phone", "Services",
	"Subtotal", "Tax", "Discount", "Grand Total", "Payment Method",
}

// ExcelSink implements repository.ArchiveSink by writing .xlsx files
// into a target directory.
type ExcelSink struct {
	dir string
}

// NewExcelSink creates a sink writing into dir, creating it if needed.
func NewExcelSink(dir string) (*ExcelSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create export dir: %w", err)
	}
	return &ExcelSink{dir: dir}, nil
}

// Export writes one row per bill under the given filename hint.
func (s *ExcelSink) Export(rows []repository.ArchiveRow, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
		values := []interface{}{
			row.BillNumber, row.Date, row.CustomerName, row.Phone, row.Services,
			row.Subtotal, row.Tax, row.Discount, row.GrandTotal, row.PaymentMethod,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
	}

	path := filepath.Join(s.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// Path returns where a given filename hint would land, for handlers
// that stream the file back to the caller.
func (s *ExcelSink) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}
