package wrap

// Structure is implemented by geometric domain objects that can draw
// themselves. How the drawing happens is the object's business; the browser
// only manages the render options and the camera orientation across
// re-renders.
type Structure interface {
	Render(opts StructureOptions) (*Scene, error)
}

// StructureOptions is the mutable options record of a structure view.
type StructureOptions struct {
	Camera       string // "orthographic" or "perspective"
	ParticleSize float64
	ShowCell     bool
	ShowAxes     bool
	ResetView    bool
}

// Scene is the presentation object produced by one structure render.
// Orientation is a 16-element camera matrix when captured.
type Scene struct {
	Camera       string
	ParticleSize float64
	Cell         bool
	Axes         bool
	Orientation  []float64
}

// orientationLen is the flattened camera matrix length a renderer reports
// once an orientation has been set.
const orientationLen = 16

// StructureView renders a Structure with its current options. Each Render
// produces a new Scene; the previously captured view orientation is restored
// unless the options ask for a reset.
type StructureView struct {
	Options StructureOptions

	obj         Structure
	orientation []float64
}

// NewStructureView wraps a Structure with default render options.
func NewStructureView(obj Structure) *StructureView {
	return &StructureView{
		obj: obj,
		Options: StructureOptions{
			Camera:       "orthographic",
			ParticleSize: 1.0,
			ShowCell:     true,
			ShowAxes:     true,
		},
	}
}

// Render draws the structure. Idempotent for unchanged options.
func (v *StructureView) Render() (*Scene, error) {
	scene, err := v.obj.Render(v.Options)
	if err != nil {
		return nil, err
	}
	if !v.Options.ResetView && len(v.orientation) == orientationLen {
		scene.Orientation = append([]float64(nil), v.orientation...)
	}
	v.orientation = append([]float64(nil), scene.Orientation...)
	return scene, nil
}
