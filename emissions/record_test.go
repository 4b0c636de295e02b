package emissions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	testData := map[string]struct {
		input    string
		opts     *CSVOptions
		err      error
		expected []Record
	}{
		"empty input": {
			input: "",
			err:   ErrNoHeader,
		},
		"missing gas column": {
			input: "idx,start_time,emissions_quantity\n0,2021-01-01,1.5\n",
			err:   ErrMissingColumn,
		},
		"missing time column": {
			input: "idx,gas,emissions_quantity\n0,co2,1.5\n",
			err:   ErrMissingColumn,
		},
		"missing quantity column": {
			input: "idx,gas,start_time\n0,co2,2021-01-01\n",
			err:   ErrMissingColumn,
		},
		"bad quantity": {
			input: "idx,gas,start_time,emissions_quantity\n0,co2,2021-01-01,abc\n",
			err:   ErrBadQuantity,
		},
		"index column ignored": {
			input: strings.Join([]string{
				"idx,gas,start_time,emissions_quantity",
				"0,co2,2021-01-01 00:00:00,10.5",
				"1,ch4,2021-01-05 00:00:00,2.5",
				"2,co2,2021-02-01 00:00:00,20",
				"",
			}, "\n"),
			expected: []Record{
				{Gas: "co2", Start: "2021-01-01 00:00:00", Quantity: 10.5},
				{Gas: "ch4", Start: "2021-01-05 00:00:00", Quantity: 2.5},
				{Gas: "co2", Start: "2021-02-01 00:00:00", Quantity: 20},
			},
		},
		"custom columns": {
			input: strings.Join([]string{
				"pollutant;when;tonnes",
				"co2;2021-01-01;3",
				"",
			}, "\n"),
			opts: &CSVOptions{
				GasColumn:      "pollutant",
				TimeColumn:     "when",
				QuantityColumn: "tonnes",
				Comma:          ';',
			},
			expected: []Record{
				{Gas: "co2", Start: "2021-01-01", Quantity: 3},
			},
		},
		"header only": {
			input: "gas,start_time,emissions_quantity\n",
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			records, err := LoadCSVFromReader(strings.NewReader(td.input), td.opts)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, records)
		})
	}
}
