// Package output renders operation results (pretty JSON, CSV, raw ID
// lists) and configures the stderr logger.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// JSON writes v as 2-space-indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// RawIDs writes ids space-separated on one line, for piping into another
// invocation's `--ids -`.
func RawIDs(w io.Writer, ids []int64) error {
	for i, id := range ids {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, strconv.FormatInt(id, 10)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// CSV writes records as comma-separated rows. The header comes from the
// first record's keys, sorted for a stable column order; every row uses
// the same columns.
func CSV(w io.Writer, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, 0, len(records[0]))
	for key := range records[0] {
		header = append(header, key)
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	row := make([]string, len(header))
	for _, record := range records {
		for i, key := range header {
			row[i] = formatCell(record[key])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatCell flattens a record value into CSV text. Composite values
// (Many2one pairs, id lists) render as JSON.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}
