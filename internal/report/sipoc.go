package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ddp-generator/internal/models"
)

// WriteSIPOC writes the raw step blocks as a SIPOC table, one row per step.
// The sheet layout is the one parser.LoadStepText reads back.
func WriteSIPOC(path, processName string, blocks []models.SIPOCBlock) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := models.SIPOCSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(models.SIPOCColumns))
	for i, col := range models.SIPOCColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(models.SIPOCColumns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return err
	}

	for i, b := range blocks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			trim(b.Number), trim(b.Name), trim(b.Supplier), trim(b.Input),
			trim(b.Process), trim(b.Output), trim(b.Customer),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: "SIPOC - " + processName}); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save SIPOC workbook %s: %w", path, err)
	}
	return nil
}
