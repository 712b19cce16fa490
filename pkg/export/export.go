// Package export writes report snapshots to CSV or JSON files, optionally
// zstd-compressed. Files are written atomically: a reader of the
// destination sees either the previous content or the complete export.
package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/itchyny/gojq"
	"github.com/klauspost/compress/zstd"

	"vizex/pkg/common"
)

// Snapshot is the part of a report the exporter reads.
type Snapshot interface {
	ID() uuid.UUID
	Subject() common.Subject
	Columns() []string
	Entries() []common.Entry
}

type options struct {
	query    string
	fileMode os.FileMode
	indent   string
}

// Option configures Write.
type Option func(*options)

// WithQuery filters the records through a jq expression before encoding.
// The expression receives the records as an array of objects and must
// produce one array of objects.
func WithQuery(expr string) Option {
	return func(o *options) {
		o.query = expr
	}
}

// WithFileMode sets the permissions of the written file. Default is 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithIndent sets the JSON indentation. Use "" for one line.
// Default is two spaces.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// table is the raw export records: one value per column per row.
type table struct {
	columns []string
	rows    [][]any
}

// Write exports snap to dest. The format follows dest's suffix (see
// FormatFor); an unsupported suffix or a bad query fails before any file
// is created. I/O failures are returned as *common.ExportError.
func Write(snap Snapshot, dest string, opts ...Option) error {
	o := &options{fileMode: 0644, indent: "  "}
	for _, opt := range opts {
		opt(o)
	}

	format, err := FormatFor(dest)
	if err != nil {
		return err
	}
	var code *gojq.Code
	if o.query != "" {
		if code, err = ParseQuery(o.query); err != nil {
			return err
		}
	}

	t := records(snap)
	if code != nil {
		if t, err = apply(code, t); err != nil {
			return &common.ExportError{Path: dest, Err: err}
		}
	}

	var buf bytes.Buffer
	switch format.Encoding {
	case CSV:
		err = encodeCSV(&buf, t)
	case JSON:
		err = encodeJSON(&buf, t, o.indent)
	}
	if err != nil {
		return &common.ExportError{Path: dest, Err: err}
	}

	if err := writeAtomic(dest, buf.Bytes(), format.Compressed, o.fileMode); err != nil {
		return &common.ExportError{Path: dest, Err: err}
	}

	slog.Info("Exported report", "id", snap.ID(), "subject", snap.Subject(), "path", dest, "format", format, "rows", len(t.rows))
	return nil
}

func records(snap Snapshot) table {
	t := table{columns: snap.Columns()}
	for _, e := range snap.Entries() {
		fields := e.Fields()
		row := make([]any, len(fields))
		for i, f := range fields {
			row[i] = f.Value
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func encodeCSV(w io.Writer, t table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cell(v)
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		// Nested values from a jq query.
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// object is one record encoded as a JSON object with keys in column order.
type object struct {
	columns []string
	values  []any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range o.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, t table, indent string) error {
	objs := make([]object, len(t.rows))
	for i, row := range t.rows {
		objs[i] = object{columns: t.columns, values: row}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(objs)
}

// writeAtomic writes data to a uuid-named temp file next to dest, then
// syncs, closes and renames it over dest. The temp file never survives a
// failure.
func writeAtomic(dest string, data []byte, compressed bool, mode os.FileMode) (err error) {
	dir := filepath.Dir(dest)
	tmp := filepath.Join(dir, "."+filepath.Base(dest)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if compressed {
		zw, err := zstd.NewWriter(bw)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return fmt.Errorf("failed to compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to compress: %w", err)
		}
	} else if _, err := bw.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
