package wrap

import "fmt"

// Array is a dense row-major n-dimensional array. It is deliberately
// minimal: the browser only needs shape inspection, indexed access and the
// 2-D plot slicing below.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// NewArray builds an array over data with the given shape.
func NewArray(shape []int, data []float64) (*Array, error) {
	size := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("invalid dimension %d", d)
		}
		size *= d
	}
	if size != len(data) {
		return nil, fmt.Errorf("shape %v needs %d values, got %d", shape, size, len(data))
	}
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return &Array{shape: append([]int(nil), shape...), strides: strides, data: data}, nil
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Shape returns the dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Data returns the flat backing values.
func (a *Array) Data() []float64 { return a.data }

// At returns the value at the given full index.
func (a *Array) At(idx ...int) float64 {
	off := 0
	for i, x := range idx {
		off += x * a.strides[i]
	}
	return a.data[off]
}

// ArrayView carries the dimension-selection state for plotting an Array.
// Arrays of rank <= 2 need no configuration. For rank >= 3 exactly two plot
// dimensions must be selected and every other axis pinned to a fixed index.
type ArrayView struct {
	// PlotDims are the two axes spanned by the rendered slice.
	PlotDims []int
	// Fixed holds one index per non-plot axis, in ascending axis order.
	Fixed []int

	arr *Array
}

// NewArrayView returns a view with the default selection: the first two axes
// plotted, every remaining axis fixed at zero.
func NewArrayView(a *Array) *ArrayView {
	v := &ArrayView{arr: a}
	if a.Rank() >= 3 {
		v.PlotDims = []int{0, 1}
		v.Fixed = make([]int, a.Rank()-2)
	}
	return v
}

// Array returns the underlying data, for the "show data" representation.
func (v *ArrayView) Array() *Array { return v.arr }

// Slice renders the view as a 2-D matrix. For rank >= 3 the result equals
// direct indexing with the fixed values. Invalid selections are reported as
// ErrConfiguration and leave the view usable.
func (v *ArrayView) Slice() ([][]float64, error) {
	a := v.arr
	switch a.Rank() {
	case 1:
		return [][]float64{append([]float64(nil), a.data...)}, nil
	case 2:
		out := make([][]float64, a.shape[0])
		for i := range out {
			out[i] = append([]float64(nil), a.data[i*a.strides[0]:(i+1)*a.strides[0]]...)
		}
		return out, nil
	}

	if len(v.PlotDims) != 2 {
		return nil, fmt.Errorf("%w: exactly two plot dimensions required, got %d", ErrConfiguration, len(v.PlotDims))
	}
	d0, d1 := v.PlotDims[0], v.PlotDims[1]
	if d0 < 0 || d0 >= a.Rank() || d1 < 0 || d1 >= a.Rank() || d0 == d1 {
		return nil, fmt.Errorf("%w: plot dimensions %v out of range for rank %d", ErrConfiguration, v.PlotDims, a.Rank())
	}
	if len(v.Fixed) != a.Rank()-2 {
		return nil, fmt.Errorf("%w: %d fixed indices required, got %d", ErrConfiguration, a.Rank()-2, len(v.Fixed))
	}

	// Full index template with the fixed axes pinned.
	idx := make([]int, a.Rank())
	fixed := 0
	for axis := 0; axis < a.Rank(); axis++ {
		if axis == d0 || axis == d1 {
			continue
		}
		x := v.Fixed[fixed]
		if x < 0 || x >= a.shape[axis] {
			return nil, fmt.Errorf("%w: fixed index %d out of range for axis %d (size %d)", ErrConfiguration, x, axis, a.shape[axis])
		}
		idx[axis] = x
		fixed++
	}

	out := make([][]float64, a.shape[d0])
	for i := 0; i < a.shape[d0]; i++ {
		row := make([]float64, a.shape[d1])
		idx[d0] = i
		for j := 0; j < a.shape[d1]; j++ {
			idx[d1] = j
			row[j] = a.At(idx...)
		}
		out[i] = row
	}
	return out, nil
}
