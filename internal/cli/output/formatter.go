// Package output renders command results as tables, JSON or CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatCSV}

// Formatter renders a slice of rows. Table and CSV columns come from
// `header` struct tags; JSON uses the `json` tags.
type Formatter interface {
	Format(rows any, w io.Writer) error
}

// NewFormatter returns the formatter for format.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatTable:
		return tableFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatCSV:
		return csvFormatter{}, nil
	}
	return nil, fmt.Errorf("unsupported format %q, must be one of: %s", format, joinFormats())
}

// Write is NewFormatter followed by Format.
func Write(format Format, rows any, w io.Writer) error {
	f, err := NewFormatter(format)
	if err != nil {
		return err
	}
	return f.Format(rows, w)
}

type jsonFormatter struct{}

func (jsonFormatter) Format(rows any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

type tableFormatter struct{}

func (tableFormatter) Format(rows any, w io.Writer) error {
	headers, records, err := tabulate(rows)
	if err != nil || len(records) == 0 {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := fmt.Fprintln(tw, strings.Join(rec, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

type csvFormatter struct{}

func (csvFormatter) Format(rows any, w io.Writer) error {
	headers, records, err := tabulate(rows)
	if err != nil || len(records) == 0 {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

// tabulate flattens a slice of structs (or struct pointers) into header and
// cell strings.
func tabulate(rows any) ([]string, [][]string, error) {
	val := reflect.ValueOf(rows)
	if val.Kind() != reflect.Slice {
		return nil, nil, fmt.Errorf("rows must be a slice, got %T", rows)
	}

	elem := val.Type().Elem()
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("rows must be structs, got %s", elem)
	}

	headers, fields := columns(elem, nil)

	records := make([][]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		row := reflect.Indirect(val.Index(i))
		rec := make([]string, len(fields))
		for j, f := range fields {
			rec[j] = fmt.Sprintf("%v", row.FieldByIndex(f).Interface())
		}
		records = append(records, rec)
	}
	return headers, records, nil
}

// columns returns the `header` tagged fields of t in order. Embedded structs
// contribute their own columns in place.
func columns(t reflect.Type, prefix []int) ([]string, [][]int) {
	var (
		headers []string
		fields  [][]int
	)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), prefix...), i)
		if h := f.Tag.Get("header"); h != "" {
			headers = append(headers, h)
			fields = append(fields, index)
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			h, idx := columns(f.Type, index)
			headers = append(headers, h...)
			fields = append(fields, idx...)
		}
	}
	return headers, fields
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
