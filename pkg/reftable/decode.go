package reftable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

var ErrDecodeRow = errors.New("error while decoding table row")

type column struct {
	index int
	field int
}

// decodeRows reads a header-addressed CSV stream into T. Every field tagged
// `csv:"name"` must have a matching header, after applying aliases
// (tag -> header). Extra columns are ignored. Empty cells decode to nil for
// pointer fields.
func decodeRows[T any](r io.Reader, aliases map[string]string) ([]T, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("row type %s is not a struct: %w", typ, ErrDecodeRow)
	}

	cols := make([]column, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("csv")
		if tag == "" {
			continue
		}
		name := tag
		if alias, ok := aliases[tag]; ok {
			name = alias
		}
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q: %w", name, ErrDecodeRow)
		}
		cols = append(cols, column{index: pos, field: i})
	}

	var rows []T
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read line %d: %w", line, err)
		}

		var row T
		value := reflect.ValueOf(&row).Elem()
		for _, col := range cols {
			if col.index >= len(record) {
				return nil, fmt.Errorf("line %d is too short: %w", line, ErrDecodeRow)
			}
			err := setField(value.Field(col.field), record[col.index])
			if err != nil {
				return nil, fmt.Errorf("line %d, field %q: %w", line, typ.Field(col.field).Name, err)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func setField(field reflect.Value, cell string) error {
	cell = strings.TrimSpace(cell)

	if field.Kind() == reflect.Pointer {
		if cell == "" {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		ptr := reflect.New(field.Type().Elem())
		field.Set(ptr)
		field = ptr.Elem()
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cell)
	case reflect.Int:
		if cell == "" {
			field.SetInt(0)
			return nil
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", cell, ErrDecodeRow)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		field.SetBool(cell == "1" || strings.EqualFold(cell, "true"))
	default:
		return fmt.Errorf("unsupported field kind %s: %w", field.Kind(), ErrDecodeRow)
	}

	return nil
}
