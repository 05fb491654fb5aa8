package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const chunkSize = 5000

// record reads one CSV row by column name.
type record struct {
	columns map[string]int
	values  []string
}

func (r record) str(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r record) integer(name string) (int64, error) {
	v := r.str(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// Some exports write integer ids as floats.
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		n = int64(f)
	}
	return n, nil
}

func (r record) decimal(name string) (float64, error) {
	v := r.str(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return f, nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999 MST",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// timestamp returns nil for empty cells, which the export uses for "not yet".
func (r record) timestamp(name string) (*time.Time, error) {
	v := r.str(name)
	if v == "" || strings.EqualFold(v, "nan") {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("column %s: unrecognised timestamp %q", name, v)
}

// loadCSV streams path in chunks into insert. Rows that fail to parse are
// skipped and counted.
func loadCSV[T any](ctx context.Context, path string, parse func(record) (*T, error), insert func(context.Context, []*T) error) (loaded, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	chunk := make([]*T, 0, chunkSize)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		if err := insert(ctx, chunk); err != nil {
			return err
		}
		loaded += len(chunk)
		chunk = chunk[:0]
		return nil
	}

	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return loaded, skipped, err
		}

		row, err := parse(record{columns: columns, values: values})
		if err != nil {
			skipped++
			continue
		}
		chunk = append(chunk, row)

		if len(chunk) == chunkSize {
			if err := flush(); err != nil {
				return loaded, skipped, err
			}
		}
	}
	return loaded, skipped, flush()
}
