package wrap

// CurveFit is implemented by fit/curve domain objects: they carry a cached
// fit (type and, for polynomial fits, order) and can redraw it.
type CurveFit interface {
	// FitType returns the fit currently cached on the object.
	FitType() string
	// FitOrder returns the polynomial order of the cached fit.
	FitOrder() int
	// FitPolynomial recomputes a polynomial fit of the given order.
	FitPolynomial(order int) error
	// Fit recomputes a non-polynomial fit of the given type.
	Fit(fitType string) error
	// Plot redraws the cached fit.
	Plot() (*Figure, error)
}

// FitTypes are the selectable fit methods.
var FitTypes = []string{
	"polynomial",
	"birch",
	"birchmurnaghan",
	"murnaghan",
	"pouriertarantola",
	"vinet",
}

// Figure is the presentation object produced by a curve plot.
type Figure struct {
	Label string
	X     []float64
	Y     []float64
}

// CurveView selects a fit method and order for a CurveFit. Render recomputes
// the fit only when the selection differs from what the object already
// caches; otherwise it just redraws.
type CurveView struct {
	FitType  string
	FitOrder int

	obj CurveFit
}

// NewCurveView wraps a CurveFit, seeded with the object's current fit type.
func NewCurveView(obj CurveFit) *CurveView {
	return &CurveView{obj: obj, FitType: obj.FitType(), FitOrder: 3}
}

// Render recomputes the fit if needed and plots it.
func (v *CurveView) Render() (*Figure, error) {
	switch {
	case v.FitType == "polynomial" &&
		(v.obj.FitType() != "polynomial" || v.obj.FitOrder() != v.FitOrder):
		if err := v.obj.FitPolynomial(v.FitOrder); err != nil {
			return nil, err
		}
	case v.FitType != "polynomial" && v.obj.FitType() != v.FitType:
		if err := v.obj.Fit(v.FitType); err != nil {
			return nil, err
		}
	}
	return v.obj.Plot()
}
