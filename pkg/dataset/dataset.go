package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/grexie/iris/pkg/numeric"
)

// Schema maps CSV columns onto features and a class label.
type Schema struct {
	FeatureColumns []int
	LabelColumn    int
	Classes        []string
}

// IrisSchema reads the Kaggle Iris.csv layout:
// Id,SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species
var IrisSchema = Schema{
	FeatureColumns: []int{1, 2, 3, 4},
	LabelColumn:    5,
	Classes:        []string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"},
}

func (s Schema) width() int {
	width := s.LabelColumn + 1
	for _, c := range s.FeatureColumns {
		if c+1 > width {
			width = c + 1
		}
	}
	return width
}

type Dataset struct {
	Header   []string
	Classes  []string
	Features [][]float64
	Labels   []int
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

// Subset returns a dataset sharing rows with d at the given indices.
func (d *Dataset) Subset(indices []int) *Dataset {
	out := &Dataset{
		Header:   d.Header,
		Classes:  d.Classes,
		Features: make([][]float64, len(indices)),
		Labels:   make([]int, len(indices)),
	}
	for i, idx := range indices {
		out.Features[i] = d.Features[idx]
		out.Labels[i] = d.Labels[idx]
	}
	return out
}

// Split shuffles the rows with rng and returns the first floor(n*ratio) as
// the training set and the remainder as the test set.
func (d *Dataset) Split(ratio float64, rng *rand.Rand) (*Dataset, *Dataset, error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, nil, fmt.Errorf("%w: train ratio must be in (0, 1), got %v", numeric.ErrInvalidParameter, ratio)
	}

	trainSize := int(float64(d.Len()) * ratio)
	indices := rng.Perm(d.Len())

	return d.Subset(indices[:trainSize]), d.Subset(indices[trainSize:]), nil
}

// Load parses delimited text with a header row into a dataset.
func Load(r io.Reader, schema Schema) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", numeric.ErrEmptyDataset)
	} else if err != nil {
		return nil, err
	}

	classes := make(map[string]int, len(schema.Classes))
	for i, class := range schema.Classes {
		classes[class] = i
	}

	d := &Dataset{
		Header:  header,
		Classes: schema.Classes,
	}
	width := schema.width()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		if len(record) < width {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, width, len(record))
		}

		feature := make([]float64, len(schema.FeatureColumns))
		for i, c := range schema.FeatureColumns {
			if v, err := strconv.ParseFloat(strings.TrimSpace(record[c]), 64); err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", line, c, err)
			} else {
				feature[i] = v
			}
		}

		label, ok := classes[strings.TrimSpace(record[schema.LabelColumn])]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown label %q", line, record[schema.LabelColumn])
		}

		d.Features = append(d.Features, feature)
		d.Labels = append(d.Labels, label)
	}

	if d.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows after header", numeric.ErrEmptyDataset)
	}

	return d, nil
}
