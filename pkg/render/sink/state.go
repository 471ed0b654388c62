package sink

import (
	"encoding/json"
	"slices"
	"time"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// View kinds a state may record.
const (
	View3D      = "3d"
	ViewCross   = "2d-cross"
	ViewRadial  = "radial"
	ViewEnergy  = "energy"
	DefaultView = View3D
)

// Cross-section planes.
const (
	PlaneXY = "xy"
	PlaneXZ = "xz"
	PlaneYZ = "yz"
)

var (
	views  = []string{View3D, ViewCross, ViewRadial, ViewEnergy}
	planes = []string{PlaneXY, PlaneXZ, PlaneYZ}
)

// State is a saved view of one orbital.
type State struct {
	QuantumNumbers hydrogen.QuantumNumbers `json:"quantum_numbers"`
	View           string                  `json:"view"`
	CrossSection   string                  `json:"cross_section,omitempty"`
	Threshold      float64                 `json:"threshold"`
	Timestamp      time.Time               `json:"timestamp"`
}

// NewState returns a state for q with the default view and the adaptive
// threshold of q.
func NewState(q hydrogen.QuantumNumbers) State {
	return State{
		QuantumNumbers: q,
		View:           DefaultView,
		Threshold:      sampling.AdaptiveThreshold(q.N, q.L),
		Timestamp:      time.Now().UTC(),
	}
}

// Validate checks the quantum numbers, view, plane and threshold.
func (s State) Validate() error {
	if err := s.QuantumNumbers.Validate(); err != nil {
		return err
	}
	if !slices.Contains(views, s.View) {
		return orberr.New(orberr.ErrCodeInvalidInput, "unknown view %q", s.View)
	}
	if s.CrossSection != "" && !slices.Contains(planes, s.CrossSection) {
		return orberr.New(orberr.ErrCodeInvalidInput, "unknown cross section %q", s.CrossSection)
	}
	return orberr.ValidateNonNegative("threshold", s.Threshold)
}

// RenderStateJSON encodes s after validating it.
func RenderStateJSON(s State, opts ...JSONOption) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return newJSONRenderer(opts).marshal(s)
}

// ParseState decodes and validates a saved state. A missing view means
// DefaultView.
func ParseState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, orberr.Wrap(orberr.ErrCodeInvalidFormat, err, "parse state")
	}
	if s.View == "" {
		s.View = DefaultView
	}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}
