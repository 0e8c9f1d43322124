// Package dataset holds in-memory (input, label) pairs for online training.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/FlavioCFOliveira/backprop/internal/net"
	"gonum.org/v1/gonum/floats"
)

// ErrNoData is returned when a source holds no data rows.
var ErrNoData = errors.New("dataset: no data rows")

// Dataset represents a collection of inputs and labels. Inputs[i] is paired
// with Labels[i].
type Dataset struct {
	Inputs [][]float64
	Labels [][]float64
}

// New returns a dataset over the given pairs. The slices are not copied.
func New(inputs, labels [][]float64) (*Dataset, error) {
	if len(inputs) != len(labels) {
		return nil, fmt.Errorf("%w: %d inputs, %d labels", net.ErrDimensionMismatch, len(inputs), len(labels))
	}
	return &Dataset{Inputs: inputs, Labels: labels}, nil
}

// Len returns the number of pairs.
func (d *Dataset) Len() int {
	return len(d.Inputs)
}

// Add appends one pair.
func (d *Dataset) Add(input, label []float64) {
	d.Inputs = append(d.Inputs, input)
	d.Labels = append(d.Labels, label)
}

// Validate checks that every input has inWidth values and every label
// outWidth values.
func (d *Dataset) Validate(inWidth, outWidth int) error {
	if len(d.Inputs) != len(d.Labels) {
		return fmt.Errorf("%w: %d inputs, %d labels", net.ErrDimensionMismatch, len(d.Inputs), len(d.Labels))
	}
	for i := range d.Inputs {
		if len(d.Inputs[i]) != inWidth {
			return fmt.Errorf("%w: row %d input has %d values, want %d", net.ErrDimensionMismatch, i, len(d.Inputs[i]), inWidth)
		}
		if len(d.Labels[i]) != outWidth {
			return fmt.Errorf("%w: row %d label has %d values, want %d", net.ErrDimensionMismatch, i, len(d.Labels[i]), outWidth)
		}
	}
	return nil
}

// LoadCSV loads data from a CSV file.
// labelCols specifies the indices of columns to be used as labels.
// All other columns are used as inputs.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, labelCols, hasHeader)
}

// ReadCSV reads a dataset from CSV records. See LoadCSV.
func ReadCSV(r io.Reader, labelCols []int, hasHeader bool) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, ErrNoData
	}

	numCols := len(records[0])
	isLabelCol := make(map[int]bool, len(labelCols))
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, fmt.Errorf("label column %d out of range [0,%d)", col, numCols)
		}
		if isLabelCol[col] {
			return nil, fmt.Errorf("label column %d listed twice", col)
		}
		isLabelCol[col] = true
	}

	d := &Dataset{
		Inputs: make([][]float64, 0, len(records)-startRow),
		Labels: make([][]float64, 0, len(records)-startRow),
	}

	values := make([]float64, numCols)
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, fmt.Errorf("inconsistent number of columns at row %d", i)
		}

		input := make([]float64, 0, numCols-len(labelCols))
		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value at row %d, col %d: %w", i, j, err)
			}
			values[j] = v
			if !isLabelCol[j] {
				input = append(input, v)
			}
		}

		// Labels keep the order given in labelCols.
		label := make([]float64, len(labelCols))
		for k, col := range labelCols {
			label[k] = values[col]
		}

		d.Add(input, label)
	}

	return d, nil
}

// Normalize performs min-max normalization of the inputs in place, column
// by column, and returns the per-column minimum and maximum it used.
// Constant columns become 0.
func (d *Dataset) Normalize() (lo, hi []float64) {
	if len(d.Inputs) == 0 {
		return nil, nil
	}

	numFeatures := len(d.Inputs[0])
	lo = make([]float64, numFeatures)
	hi = make([]float64, numFeatures)
	col := make([]float64, len(d.Inputs))
	for j := 0; j < numFeatures; j++ {
		for i, input := range d.Inputs {
			col[i] = input[j]
		}
		lo[j] = floats.Min(col)
		hi[j] = floats.Max(col)
	}

	for _, input := range d.Inputs {
		for j := range input {
			if diff := hi[j] - lo[j]; diff != 0 {
				input[j] = (input[j] - lo[j]) / diff
			} else {
				input[j] = 0
			}
		}
	}
	return lo, hi
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test) that share rows with d.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Inputs)) * ratio)

	train := &Dataset{
		Inputs: d.Inputs[:splitIdx],
		Labels: d.Labels[:splitIdx],
	}
	test := &Dataset{
		Inputs: d.Inputs[splitIdx:],
		Labels: d.Labels[splitIdx:],
	}
	return train, test
}
