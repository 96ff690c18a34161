package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/session"
)

const pairBody = `{"bodies": [
	{"mass": 1, "x": -10, "y": 0, "vx": 0, "vy": 0, "tone": 261.63, "id": "Тело 1"},
	{"mass": 1, "x": 10, "y": 0, "vx": 0, "vy": 0, "tone": 329.63, "id": "Тело 2"}
]}`

func newTestServer(t *testing.T) (*httptest.Server, *session.Store) {
	t.Helper()
	store := session.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(config.DefaultConfig().Server, store, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func decodePositions(t *testing.T, resp *http.Response) []gravity.Result {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status %d: %s", resp.StatusCode, b)
	}
	var out positionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return out.Positions
}

func TestStartThenStep(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	resp, err := client.Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(pairBody))
	if err != nil {
		t.Fatal(err)
	}
	pos := decodePositions(t, resp)
	if len(pos) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(pos))
	}
	if math.Abs(pos[0].VX-0.25) > 1e-12 {
		t.Errorf("vx = %f, want 0.25", pos[0].VX)
	}
	if pos[0].ID.String() != "Тело 1" {
		t.Errorf("id not echoed: %s", pos[0].ID)
	}

	resp, err = client.Get(ts.URL + "/experiments/gravity/step?dt=0.2")
	if err != nil {
		t.Fatal(err)
	}
	next := decodePositions(t, resp)
	if len(next) != 2 || next[0].X == pos[0].X {
		t.Errorf("step did not advance retained state: %+v", next)
	}
}

func TestStepWithoutSeedIsEmpty(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := newClient(t).Get(ts.URL + "/experiments/gravity/step")
	if err != nil {
		t.Fatal(err)
	}
	pos := decodePositions(t, resp)
	if pos == nil || len(pos) != 0 {
		t.Errorf("expected empty positions, got %v", pos)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ts, store := newTestServer(t)
	a, b := newClient(t), newClient(t)

	resp, err := a.Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(pairBody))
	if err != nil {
		t.Fatal(err)
	}
	decodePositions(t, resp)

	resp, err = b.Get(ts.URL + "/experiments/gravity/step")
	if err != nil {
		t.Fatal(err)
	}
	if pos := decodePositions(t, resp); len(pos) != 0 {
		t.Errorf("second client saw first client's bodies: %v", pos)
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"bodies": [{"mass": 1, "x": 0, "y": 0, "vx": 0, "tone": 1, "id": "a"}]}`},
		{"non-numeric", `{"bodies": [{"mass": "heavy", "x": 0, "y": 0, "vx": 0, "vy": 0, "tone": 1, "id": "a"}]}`},
		{"malformed json", `{"bodies": [`},
		{"bad dt", `{"bodies": [], "dt": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t)
			resp, err := newClient(t).Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
				t.Errorf("expected error body, got %v %q", err, e.Error)
			}
		})
	}
}

func TestRejectedReseedKeepsState(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	resp, err := client.Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(pairBody))
	if err != nil {
		t.Fatal(err)
	}
	decodePositions(t, resp)

	bad := `{"bodies": [{"mass": 1, "x": 0, "y": 0, "vx": 0, "vy": 0, "tone": 1, "id": "ok"}, {"mass": 1}]}`
	resp, err = client.Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(bad))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp, err = client.Get(ts.URL + "/experiments/gravity/step")
	if err != nil {
		t.Fatal(err)
	}
	if pos := decodePositions(t, resp); len(pos) != 2 {
		t.Errorf("expected original 2 bodies, got %d", len(pos))
	}
}

func TestStepBadDt(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, q := range []string{"abc", "0", "-0.5"} {
		resp, err := newClient(t).Get(ts.URL + "/experiments/gravity/step?dt=" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("dt=%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestPresets(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)

	resp, err := client.Get(ts.URL + "/experiments/gravity/presets")
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Presets []presetInfo `json:"presets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(list.Presets) != len(config.Presets) {
		t.Errorf("expected %d presets, got %d", len(config.Presets), len(list.Presets))
	}

	resp, err = client.Post(ts.URL+"/experiments/gravity/preset/solar", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if pos := decodePositions(t, resp); len(pos) != 4 {
		t.Errorf("expected 4 bodies, got %d", len(pos))
	}

	resp, err = client.Post(ts.URL+"/experiments/gravity/preset/nope", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestWrongMethod(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/experiments/gravity/start")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestMalformedCookieGetsFreshSession(t *testing.T) {
	ts, store := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/experiments/gravity/step", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-session"})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	decodePositions(t, resp)

	var issued string
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			issued = c.Value
		}
	}
	if !session.ValidID(issued) {
		t.Errorf("expected a fresh session cookie, got %q", issued)
	}
	if _, ok := store.Lookup("not-a-session"); ok {
		t.Error("malformed id must not create a session")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session, got %d", store.Len())
	}
}

func TestStateDoesNotAdvance(t *testing.T) {
	ts, store := newTestServer(t)
	client := newClient(t)

	resp, err := client.Get(ts.URL + "/experiments/gravity/state")
	if err != nil {
		t.Fatal(err)
	}
	if pos := decodePositions(t, resp); len(pos) != 0 {
		t.Errorf("expected no bodies before start, got %v", pos)
	}
	if store.Len() != 0 {
		t.Errorf("state read must not open a session, got %d", store.Len())
	}

	resp, err = client.Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(pairBody))
	if err != nil {
		t.Fatal(err)
	}
	started := decodePositions(t, resp)

	for i := 0; i < 2; i++ {
		resp, err = client.Get(ts.URL + "/experiments/gravity/state")
		if err != nil {
			t.Fatal(err)
		}
		pos := decodePositions(t, resp)
		if len(pos) != 2 || pos[0].X != started[0].X || pos[1].VX != started[1].VX {
			t.Errorf("state read %d moved bodies: %+v", i, pos)
		}
	}
}

func TestEndSession(t *testing.T) {
	ts, store := newTestServer(t)
	client := newClient(t)

	resp, err := client.Post(ts.URL+"/experiments/gravity/start", "application/json", strings.NewReader(pairBody))
	if err != nil {
		t.Fatal(err)
	}
	decodePositions(t, resp)
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/experiments/gravity/session", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err = client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if store.Len() != 0 {
		t.Errorf("expected session removed, got %d", store.Len())
	}

	resp, err = client.Get(ts.URL + "/experiments/gravity/step")
	if err != nil {
		t.Fatal(err)
	}
	if pos := decodePositions(t, resp); len(pos) != 0 {
		t.Errorf("expected a fresh empty state after ending, got %v", pos)
	}
}
