package server

import (
	"net/http"
	"strings"

	"github.com/matzehuels/orbital/pkg/buildinfo"
	"github.com/matzehuels/orbital/pkg/coords"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
	"github.com/matzehuels/orbital/pkg/render"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// quantumNumbers reads n, l and, when withM is set, m from the path.
func quantumNumbers(r *http.Request, withM bool) (hydrogen.QuantumNumbers, error) {
	var q hydrogen.QuantumNumbers
	var err error
	if q.N, err = pathInt(r, "n"); err != nil {
		return q, err
	}
	if q.L, err = pathInt(r, "l"); err != nil {
		return q, err
	}
	if withM {
		if q.M, err = pathInt(r, "m"); err != nil {
			return q, err
		}
	}
	return q, q.Validate()
}

func (s *Server) handleOrbital(w http.ResponseWriter, r *http.Request) {
	q, err := quantumNumbers(r, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q.Describe())
}

type densityResponse struct {
	Orbital string `json:"orbital"`
	coords.Spherical
	XYZ         coords.Cartesian `json:"cartesian"`
	Wave        float64          `json:"psi"`
	Density     float64          `json:"density"`
	Radial      float64          `json:"radial"`
	Angular     float64          `json:"angular"`
	Probability float64          `json:"radial_probability"`
	Approximate bool             `json:"approximate,omitempty"`
}

func (s *Server) handleDensity(w http.ResponseWriter, r *http.Request) {
	q, err := quantumNumbers(r, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var p coords.Spherical
	if p.R, err = queryFloat(r, "r", 1); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := orberr.ValidateNonNegative("r", p.R); err != nil {
		s.writeError(w, r, err)
		return
	}
	if p.Theta, err = queryFloat(r, "theta", 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	if p.Phi, err = queryFloat(r, "phi", 0); err != nil {
		s.writeError(w, r, err)
		return
	}

	approx, err := queryBool(r, "approximate")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	radial := hydrogen.RadialWaveFunction(p.R, q.N, q.L)
	angular := hydrogen.SphericalHarmonic(p.Theta, p.Phi, q.L, q.M)
	psi := q.WaveFunctionAt(p)
	if approx {
		angular = hydrogen.ApproximateHarmonic(p.Theta, p.Phi, q.L, q.M)
		psi = radial * angular
	}
	writeJSON(w, http.StatusOK, densityResponse{
		Orbital:     q.Name(),
		Spherical:   p,
		XYZ:         p.Cartesian(),
		Wave:        psi,
		Density:     psi * psi,
		Radial:      radial,
		Angular:     angular,
		Probability: hydrogen.RadialProbabilityDensity(p.R, q.N, q.L),
		Approximate: approx,
	})
}

// format reads ?format=, defaulting to JSON.
func format(r *http.Request) string {
	if f := strings.ToLower(r.URL.Query().Get("format")); f != "" {
		return f
	}
	return render.FormatJSON
}

func (s *Server) handleRadial(w http.ResponseWriter, r *http.Request) {
	q, err := quantumNumbers(r, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.Options{
		Kind:           pipeline.KindProfile,
		QuantumNumbers: q,
		Formats:        []string{format(r)},
	}
	if opts.Points, err = queryInt(r, "points", 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.MaxR, err = queryFloat(r, "max_r", 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.execute(w, r, opts)
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Kind:    pipeline.KindLevels,
		Formats: []string{format(r)},
	}
	switch d := r.URL.Query().Get("diagram"); d {
	case "", pipeline.KindLevels:
	case pipeline.KindTerms:
		opts.Kind = pipeline.KindTerms
	default:
		s.writeError(w, r, orberr.New(orberr.ErrCodeInvalidInput, "unknown diagram %q (want levels or terms)", d))
		return
	}
	var err error
	if opts.MaxN, err = queryInt(r, "max", 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.execute(w, r, opts)
}

// execute runs a single-format pipeline request and writes the artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f := opts.Formats[0]
	writeArtifact(w, f, res.Artifacts[f], res.CacheInfo.RenderHit)
}
