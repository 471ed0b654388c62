package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/orbital/pkg/cache"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

// Sweep states.
const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// maxSweepBody caps the POST /sweeps request body.
const maxSweepBody = 1 << 16

// SweepRequest is the body of POST /sweeps.
type SweepRequest struct {
	hydrogen.QuantumNumbers
	Resolution int     `json:"resolution,omitempty"`
	MaxR       float64 `json:"max_r,omitempty"`
	MinR       float64 `json:"min_r,omitempty"`
	Threshold  float64 `json:"threshold,omitempty"`
}

func (req SweepRequest) options() pipeline.Options {
	return pipeline.Options{
		Kind:           pipeline.KindCloud,
		QuantumNumbers: req.QuantumNumbers,
		Resolution:     req.Resolution,
		MaxR:           req.MaxR,
		MinR:           req.MinR,
		Threshold:      req.Threshold,
		Formats:        []string{pipeline.FormatJSON},
	}
}

// Sweep is the stored record of one volumetric sweep.
type Sweep struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	Orbital    string       `json:"orbital"`
	Request    SweepRequest `json:"request"`
	Points     int          `json:"points,omitempty"`
	SourceHash string       `json:"source_hash,omitempty"`
	Error      string       `json:"error,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
}

func (s *Server) handleCreateSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSweepBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, orberr.Wrap(orberr.ErrCodeInvalidFormat, err, "invalid sweep request: %v", err))
		return
	}

	// Validate up front so bad requests fail with 400 rather than a failed sweep.
	opts := req.options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	sw := Sweep{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Orbital:   req.Name(),
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.saveSweep(r.Context(), sw); err != nil {
		s.writeError(w, r, err)
		return
	}

	started := s.sweeps.TryGo(func() error {
		s.runSweep(sw, opts)
		return nil
	})
	if !started {
		_ = s.store.Delete(r.Context(), s.keyer.SweepKey(sw.ID))
		s.writeError(w, r, orberr.New(orberr.ErrCodeUnavailable, "too many sweeps in progress, retry later"))
		return
	}

	s.logger.Info("sweep accepted", "id", sw.ID, "orbital", sw.Orbital)
	w.Header().Set("Location", "/sweeps/"+sw.ID)
	writeJSON(w, http.StatusAccepted, sw)
}

// runSweep samples the cloud and records the outcome. Records are written
// with a fresh context so a shutdown still persists the failure.
func (s *Server) runSweep(sw Sweep, opts pipeline.Options) {
	start := time.Now()
	res, err := s.runner.Execute(s.ctx, opts)

	finished := time.Now().UTC()
	sw.FinishedAt = &finished
	ctx := context.Background()
	if err != nil {
		sw.Status = StatusFailed
		sw.Error = orberr.UserMessage(err)
		if errors.Is(err, context.Canceled) || orberr.Is(err, orberr.ErrCodeCanceled) {
			sw.Error = "canceled"
		}
		s.logger.Warn("sweep failed", "id", sw.ID, "err", err)
	} else {
		sw.Status = StatusDone
		sw.Points = res.Stats.Samples
		sw.SourceHash = res.SourceHash
		if err := s.store.Set(ctx, cloudKey(s.keyer, sw.ID), res.Artifacts[pipeline.FormatJSON], cache.SweepTTL); err != nil {
			sw.Status = StatusFailed
			sw.Error = "store cloud: " + err.Error()
		}
		s.logger.Info("sweep done", "id", sw.ID, "points", sw.Points, "duration", time.Since(start))
	}
	if err := s.saveSweep(ctx, sw); err != nil {
		s.logger.Error("save sweep", "id", sw.ID, "err", err)
	}
}

func cloudKey(k cache.Keyer, id string) string {
	return k.SweepKey(id) + ":cloud"
}

func (s *Server) saveSweep(ctx context.Context, sw Sweep) error {
	return cache.SetJSON(ctx, s.store, s.keyer.SweepKey(sw.ID), sw, cache.SweepTTL)
}

func (s *Server) loadSweep(ctx context.Context, id string) (Sweep, error) {
	var sw Sweep
	if err := orberr.ValidateIdentifier(id); err != nil {
		return sw, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return sw, orberr.New(orberr.ErrCodeInvalidInput, "invalid sweep id %q", id)
	}
	err := cache.LoadJSON(ctx, s.store, s.keyer.SweepKey(id), &sw)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return sw, orberr.New(orberr.ErrCodeNotFound, "sweep %s not found", id)
	case err != nil:
		return sw, orberr.Wrap(orberr.ErrCodeInternal, err, "load sweep")
	}
	return sw, nil
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	sw, err := s.loadSweep(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sw)
}

func (s *Server) handleSweepCloud(w http.ResponseWriter, r *http.Request) {
	sw, err := s.loadSweep(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sw.Status != StatusDone {
		s.writeError(w, r, orberr.New(orberr.ErrCodeNotFound, "sweep %s is %s", sw.ID, sw.Status))
		return
	}
	data, ok, err := s.store.Get(r.Context(), cloudKey(s.keyer, sw.ID))
	if err != nil {
		s.writeError(w, r, orberr.Wrap(orberr.ErrCodeInternal, err, "load cloud"))
		return
	}
	if !ok {
		s.writeError(w, r, orberr.New(orberr.ErrCodeNotFound, "cloud for sweep %s expired", sw.ID))
		return
	}
	writeArtifact(w, pipeline.FormatJSON, data, true)
}
