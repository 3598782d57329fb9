package encoder

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"synthetic_data_generator/generator"
)

// CSVEncoder writes a header row followed by the data rows.
type CSVEncoder struct{}

func (CSVEncoder) EncodeTable(spec generator.TableSpec) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(spec.Headers); err != nil {
		return nil, fmt.Errorf("csv: header: %w", err)
	}
	if err := w.WriteAll(spec.Rows); err != nil {
		return nil, fmt.Errorf("csv: rows: %w", err)
	}
	return buf.Bytes(), nil
}
