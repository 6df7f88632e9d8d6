package bundle

import (
	"fmt"

	"github.com/tsbundle/tsbundle/pkg/arff"
	"github.com/tsbundle/tsbundle/pkg/tsfile"
)

// Pack flattens a parsed .ts table into a row-major float32 array of
// shape (instances, width). Each dimension is padded to its own maximum
// length with sentinel, the end-of-series marker the training code uses
// to recover ragged lengths. When labelColumn is true and the file
// declares labels, the label's vocabulary index becomes the final column.
func Pack(res *tsfile.ParseResult, sentinel float64, labelColumn bool) ([]float32, []int, error) {
	numDims := res.NumDimensions()
	maxLen := make([]int, numDims)
	for _, inst := range res.Instances {
		for d, series := range inst {
			if series.Len() > maxLen[d] {
				maxLen[d] = series.Len()
			}
		}
	}

	width := 0
	for _, l := range maxLen {
		width += l
	}
	withLabel := labelColumn && res.HasLabels
	if withLabel {
		width++
	}
	if width == 0 {
		return nil, nil, fmt.Errorf("dataset %s has no observations", res.Problem)
	}

	data := make([]float32, 0, len(res.Instances)*width)
	for i, inst := range res.Instances {
		for d, series := range inst {
			for _, v := range series.Values {
				data = append(data, float32(v))
			}
			for pad := series.Len(); pad < maxLen[d]; pad++ {
				data = append(data, float32(sentinel))
			}
		}
		if withLabel {
			data = append(data, float32(res.LabelIndex(res.Labels[i])))
		}
	}
	return data, []int{len(res.Instances), width}, nil
}

// PackLabels encodes the label array as vocabulary indexes, for callers
// that keep labels out of the data table.
func PackLabels(res *tsfile.ParseResult) ([]float32, []int) {
	if !res.HasLabels {
		return nil, nil
	}
	labels := make([]float32, len(res.Labels))
	for i, label := range res.Labels {
		labels[i] = float32(res.LabelIndex(label))
	}
	return labels, []int{len(labels)}
}

// PackRelation flattens an ARFF relation, which is already rectangular.
func PackRelation(rel *arff.Relation) ([]float32, []int, error) {
	if len(rel.Rows) == 0 || len(rel.Attributes) == 0 {
		return nil, nil, fmt.Errorf("relation %s is empty", rel.Name)
	}
	width := len(rel.Attributes)
	data := make([]float32, 0, len(rel.Rows)*width)
	for _, row := range rel.Rows {
		for _, v := range row {
			data = append(data, float32(v))
		}
	}
	return data, []int{len(rel.Rows), width}, nil
}
