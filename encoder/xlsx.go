package encoder

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"synthetic_data_generator/generator"
)

// XLSXEncoder writes a single-sheet workbook with a bold header row.
type XLSXEncoder struct{}

func (XLSXEncoder) EncodeTable(spec generator.TableSpec) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeXLSXRow(f, sheet, 1, spec.Headers); err != nil {
		return nil, err
	}
	for i, row := range spec.Rows {
		if err := writeXLSXRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if len(spec.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("xlsx: header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(spec.Headers), 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: header range: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return nil, fmt.Errorf("xlsx: header style: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSXRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("xlsx: row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("xlsx: row %d: %w", rowNum, err)
	}
	return nil
}
