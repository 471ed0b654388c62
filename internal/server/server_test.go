package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/observability"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard)
	s := New(nil, nil, logger, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e), "body: %s", body)
	return e
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Server"), "orbital/"))
	assert.Contains(t, string(body), `"status":"ok"`)
	assert.Contains(t, string(body), `"go":`)
}

func TestOrbital(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts, "/orbitals/2/1/0")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got struct {
		N           int     `json:"n"`
		Name        string  `json:"name"`
		Energy      float64 `json:"energy_ev"`
		RadialNodes int     `json:"radial_nodes"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 2, got.N)
	assert.Equal(t, "2p_z", got.Name)
	assert.InDelta(t, -3.4, got.Energy, 1e-9)
	assert.Equal(t, 0, got.RadialNodes)
}

func TestOrbitalErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		path string
		code orberr.Code
	}{
		{"/orbitals/1/1/0", orberr.ErrCodeInvalidQuantumNumbers},
		{"/orbitals/2/1/2", orberr.ErrCodeInvalidQuantumNumbers},
		{"/orbitals/0/0/0", orberr.ErrCodeInvalidQuantumNumbers},
		{"/orbitals/x/0/0", orberr.ErrCodeInvalidInput},
		{"/orbitals/1/0/0/density?r=-1", orberr.ErrCodeInvalidInput},
		{"/orbitals/1/0/0/density?theta=abc", orberr.ErrCodeInvalidInput},
		{"/orbitals/1/0/0/density?approximate=maybe", orberr.ErrCodeInvalidInput},
		{"/orbitals/3037000500/0/0", orberr.ErrCodeInvalidQuantumNumbers},
		{"/orbitals/101/0/0/density", orberr.ErrCodeInvalidQuantumNumbers},
		{"/radial/100000000/0", orberr.ErrCodeInvalidQuantumNumbers},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.Equal(t, tt.code, decodeError(t, body).Error)
		})
	}
}

func TestDensity(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts, "/orbitals/1/0/0/density?r=1")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got densityResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "1s", got.Orbital)
	assert.InDelta(t, 1.0, got.R, 1e-12)
	assert.InDelta(t, 1.0, got.XYZ.Z, 1e-9, "theta=0 points along z")
	assert.InDelta(t, 2*math.Exp(-1), got.Radial, 1e-9)
	assert.InDelta(t, 1/math.Sqrt(4*math.Pi), got.Angular, 1e-9)
	assert.InDelta(t, got.Wave*got.Wave, got.Density, 1e-15)
	assert.Greater(t, got.Probability, 0.0)
}

func TestDensityApproximate(t *testing.T) {
	_, ts := newTestServer(t)
	const path = "/orbitals/2/1/1/density?r=2&theta=1.5707963267948966&phi=0"

	resp, body := get(t, ts, path)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var exact densityResponse
	require.NoError(t, json.Unmarshal(body, &exact))
	assert.False(t, exact.Approximate)
	assert.InDelta(t, -math.Sqrt(3/(8*math.Pi)), exact.Angular, 1e-9)

	resp, body = get(t, ts, path+"&approximate=true")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var approx densityResponse
	require.NoError(t, json.Unmarshal(body, &approx))
	assert.True(t, approx.Approximate)
	assert.InDelta(t, 1.0, approx.Angular, 1e-9, "cos(0)·sin(π/2)")
	assert.InDelta(t, exact.Radial, approx.Radial, 1e-15)
	assert.InDelta(t, approx.Radial, approx.Wave, 1e-12)
}

func TestLargestShell(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts, "/orbitals/100/0/0")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got struct {
		Energy     float64 `json:"energy_ev"`
		Degeneracy int     `json:"degeneracy"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.InDelta(t, -13.6e-4, got.Energy, 1e-12)
	assert.Equal(t, 10000, got.Degeneracy)
}

func TestRadial(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts, "/radial/2/0?points=100")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	assert.Contains(t, string(body), `"samples"`)

	resp, body = get(t, ts, "/radial/2/0?format=SVG")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<svg")

	resp, body = get(t, ts, "/radial/2/0?format=gif")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, orberr.ErrCodeInvalidFormat, decodeError(t, body).Error)

	resp, body = get(t, ts, "/radial/2/0?points=1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, orberr.ErrCodeInvalidInput, decodeError(t, body).Error)
}

func TestLevels(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts, "/levels?max=3")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got struct {
		Levels      []json.RawMessage `json:"levels"`
		Transitions []json.RawMessage `json:"transitions"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got.Levels, 3)

	resp, body = get(t, ts, "/levels?diagram=terms&max=3&format=dot")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz"))
	assert.Contains(t, string(body), "digraph")

	resp, _ = get(t, ts, "/levels?max=99")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, ts, "/levels?diagram=pie")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, ts, "/levels?format=dot")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "level diagrams have no DOT form")
}

func postSweep(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/sweeps", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestSweepLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := postSweep(t, ts, `{"n":2,"l":1,"m":0,"resolution":12}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(body))

	var sw Sweep
	require.NoError(t, json.Unmarshal(body, &sw))
	_, err := uuid.Parse(sw.ID)
	require.NoError(t, err)
	assert.Equal(t, "2p_z", sw.Orbital)
	assert.Equal(t, "/sweeps/"+sw.ID, resp.Header.Get("Location"))

	require.Eventually(t, func() bool {
		_, body := get(t, ts, "/sweeps/"+sw.ID)
		var cur Sweep
		if json.Unmarshal(body, &cur) != nil {
			return false
		}
		sw = cur
		return cur.Status != StatusPending
	}, 10*time.Second, 10*time.Millisecond)

	require.Equal(t, StatusDone, sw.Status, sw.Error)
	assert.NotEmpty(t, sw.SourceHash)
	assert.NotNil(t, sw.FinishedAt)

	resp, body = get(t, ts, "/sweeps/"+sw.ID+"/cloud")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `"points"`)
	assert.Contains(t, string(body), `"resolution":12`)
}

func TestSweepErrors(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := postSweep(t, ts, `{"n":2,`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, orberr.ErrCodeInvalidFormat, decodeError(t, body).Error)

	resp, body = postSweep(t, ts, `{"n":2,"l":1,"m":0,"colour":"red"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown fields are rejected")

	resp, body = postSweep(t, ts, `{"n":1,"l":1,"m":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, orberr.ErrCodeInvalidQuantumNumbers, decodeError(t, body).Error)

	resp, body = postSweep(t, ts, `{"n":2,"l":0,"m":0,"resolution":100000}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, ts, "/sweeps/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = get(t, ts, "/sweeps/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, orberr.ErrCodeNotFound, decodeError(t, body).Error)

	resp, _ = get(t, ts, "/sweeps/"+uuid.NewString()+"/cloud")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{orberr.New(orberr.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{orberr.New(orberr.ErrCodeNotFound, "x"), http.StatusNotFound},
		{orberr.New(orberr.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{orberr.New(orberr.ErrCodeUnavailable, "x"), http.StatusServiceUnavailable},
		{orberr.Wrap(orberr.ErrCodeCanceled, context.Canceled, "x"), http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "%v", tt.err)
	}
}

func TestCloseCancelsSweeps(t *testing.T) {
	s, ts := newTestServer(t)

	// A large grid keeps the sweep busy long enough to be canceled.
	resp, body := postSweep(t, ts, `{"n":4,"l":2,"m":0,"resolution":160}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(body))
	var sw Sweep
	require.NoError(t, json.Unmarshal(body, &sw))

	require.NoError(t, s.Close())

	got, err := s.loadSweep(context.Background(), sw.ID)
	require.NoError(t, err)
	assert.NotEqual(t, StatusPending, got.Status, "Close waits for the sweep to record its outcome")
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *httpRecorder) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	_, ts := newTestServer(t)
	get(t, ts, "/orbitals/3/2/0")
	get(t, ts, "/orbitals/3/3/0")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"/orbitals/{n}/{l}/{m}", "/orbitals/{n}/{l}/{m}"}, rec.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, rec.status)
}
