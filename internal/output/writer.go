package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/paramsweep/internal/sweep"
)

const (
	// DefaultSeparator separates fields in the delimited output.
	DefaultSeparator = ";;"
	// DefaultFileName is used when no destination is given.
	DefaultFileName = "paramsweep"
)

// ErrNoRecords is returned when there is nothing to write.
var ErrNoRecords = errors.New("no records to write")

// ResultWriter writes records as delimited text, one line per record.
type ResultWriter struct {
	// Separator joins the fields of a line. Empty means DefaultSeparator.
	Separator string
	// Timestamp inserts the current time into the destination name.
	Timestamp bool
	// Now supplies the time used for the destination name. Nil means time.Now.
	Now func() time.Time
}

// NewResultWriter returns a writer with the default separator and
// timestamped file names.
func NewResultWriter() *ResultWriter {
	return &ResultWriter{Separator: DefaultSeparator, Timestamp: true}
}

// Write stores records under a name derived from destination and returns
// the path actually written.
func (w *ResultWriter) Write(records []sweep.Record, destination string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	path := w.destinationPath(destination)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var b strings.Builder
	if err := w.encode(&b, records); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write results: %w", err)
	}
	return path, nil
}

func (w *ResultWriter) encode(b *strings.Builder, records []sweep.Record) error {
	sep := w.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	header := records[0].Names()
	b.WriteString(strings.Join(header, sep))
	b.WriteByte('\n')

	line := make([]string, len(header))
	for i, r := range records {
		values := r.Values()
		if len(values) != len(header) {
			return fmt.Errorf("record #%d has %d fields, header has %d", i, len(values), len(header))
		}
		last := len(values) - 1
		for j, v := range values[:last] {
			field, err := FormatField(v)
			if err != nil {
				return fmt.Errorf("record #%d field %q: %w", i, header[j], err)
			}
			line[j] = field
		}
		result, err := json.Marshal(values[last])
		if err != nil {
			return fmt.Errorf("record #%d result: %w", i, err)
		}
		line[last] = string(result)
		b.WriteString(strings.Join(line, sep))
		b.WriteByte('\n')
	}
	return nil
}

// destinationPath applies the naming rules: a name with a single extension
// gets "_yy-mm-dd-HH-MM-SS" before the extension, any other name gets
// "_yy-mm-dd_HH-MM-SS.csv" appended.
func (w *ResultWriter) destinationPath(destination string) string {
	if destination == "" {
		destination = DefaultFileName
	}
	if !w.Timestamp {
		return destination
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	t := now()

	dir, base := filepath.Split(destination)
	if parts := strings.Split(base, "."); len(parts) == 2 {
		return dir + parts[0] + "_" + t.Format("06-01-02-15-04-05") + "." + parts[1]
	}
	return destination + "_" + t.Format("06-01-02_15-04-05") + ".csv"
}

// FormatField renders an axis value: primitives as plain text, anything else
// as JSON.
func FormatField(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
