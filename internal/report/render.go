package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Columns returns the union of field names across all records, in
// first-seen order. Records may carry different alert columns, so the
// header is discovered from the data rather than declared up front.
func (r *Report) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	for _, rec := range r.records {
		for _, k := range rec.keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// WriteCSV renders the report as CSV with a header row. Fields a record
// does not carry are written as empty cells.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cols := r.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	row := make([]string, len(cols))
	for _, rec := range r.records {
		for i, col := range cols {
			v, ok := rec.Get(col)
			if !ok {
				row[i] = ""
				continue
			}
			row[i] = formatValue(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}
	return nil
}

// WriteJSON renders the report as a JSON array of objects, each with its
// fields in insertion order.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.records); err != nil {
		return fmt.Errorf("report: write json: %w", err)
	}
	return nil
}

// formatValue renders a decoded JSON value as a CSV cell. Numbers use
// their shortest decimal form, so integer-valued fields print without a
// trailing ".0".
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
