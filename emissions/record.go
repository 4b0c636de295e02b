// Package emissions loads transaction level greenhouse gas emissions
// records from CSV input.
package emissions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrNoHeader      = errors.New("missing header row")
	ErrMissingColumn = errors.New("missing required column")
	ErrBadQuantity   = errors.New("unparseable emissions quantity")
)

const (
	DefaultGasColumn      = "gas"
	DefaultTimeColumn     = "start_time"
	DefaultQuantityColumn = "emissions_quantity"
)

// Record is one raw emissions row. The start timestamp is carried as the
// original string and parsed later by the series builder.
type Record struct {
	Gas      string
	Start    string
	Quantity float64
}

// CSVOptions controls which columns hold the gas label, start timestamp,
// and emissions quantity. Any other column, including a leading index
// column, is ignored.
type CSVOptions struct {
	GasColumn      string
	TimeColumn     string
	QuantityColumn string
	Comma          rune
}

// NewDefaultCSVOptions returns options matching the standard emissions
// export column names.
func NewDefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		GasColumn:      DefaultGasColumn,
		TimeColumn:     DefaultTimeColumn,
		QuantityColumn: DefaultQuantityColumn,
		Comma:          ',',
	}
}

// LoadCSV reads all records from the file at path. The file handle is
// released before returning on all paths.
func LoadCSV(path string, opts *CSVOptions) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open emissions file, %w", err)
	}
	defer f.Close()

	return LoadCSVFromReader(f, opts)
}

// LoadCSVFromReader reads all records from r. The first row must be a
// header naming the configured columns; a missing required column fails
// with ErrMissingColumn.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) ([]Record, error) {
	if opts == nil {
		opts = NewDefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header, %w", err)
	}

	gasIdx, timeIdx, quantityIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.GasColumn:
			gasIdx = i
		case opts.TimeColumn:
			timeIdx = i
		case opts.QuantityColumn:
			quantityIdx = i
		}
	}
	if gasIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opts.GasColumn, ErrMissingColumn)
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opts.TimeColumn, ErrMissingColumn)
	}
	if quantityIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opts.QuantityColumn, ErrMissingColumn)
	}

	var records []Record
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("at row %d, %w", row, err)
		}
		row++

		quantityStr := strings.TrimSpace(fields[quantityIdx])
		quantity, err := strconv.ParseFloat(quantityStr, 64)
		if err != nil {
			return nil, fmt.Errorf("at row %d, %q, %w", row, quantityStr, ErrBadQuantity)
		}

		records = append(records, Record{
			Gas:      strings.TrimSpace(fields[gasIdx]),
			Start:    strings.TrimSpace(fields[timeIdx]),
			Quantity: quantity,
		})
	}
	return records, nil
}
