package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"showdown-sim/config"
	"showdown-sim/data"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	dex, err := data.Load("../data/pokedex.json", "../data/moves.json", slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default().AI
	cfg.Playouts = 20
	cfg.Workers = 2
	cfg.Policy = "deterministic"
	s := New(dex, cfg, slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func one(v int) *int { return &v }

// Both sides at 1 HP with black faster: only attacking can win.
func lastHit() DecideRequest {
	return DecideRequest{
		Black:   "Charizard\n- Tackle\n- Growl\n",
		White:   "Venusaur\n- Tackle\n",
		BlackHP: one(1),
		WhiteHP: one(1),
		Player:  "black",
		Seed:    9,
	}
}

func TestDecide(t *testing.T) {
	s, _ := newTestServer(t)
	resp, err := s.Decide(context.Background(), lastHit())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Move != "Tackle" || resp.Choice != "move Tackle" {
		t.Errorf("chose %q", resp.Choice)
	}
	if len(resp.Strategy) != 1 || resp.Strategy[0].Probability != 1 {
		t.Errorf("strategy = %+v", resp.Strategy)
	}
	if resp.Matrix == nil || len(resp.Matrix.Rows) != 2 || resp.Matrix.Values[0][0] != 1 || resp.Matrix.Values[1][0] != 0 {
		t.Errorf("matrix = %+v", resp.Matrix)
	}
}

func TestDecideBadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	tests := map[string]func(*DecideRequest){
		"player":        func(r *DecideRequest) { r.Player = "grey" },
		"team":          func(r *DecideRequest) { r.Black = "Missingno\n- Tackle\n" },
		"lead":          func(r *DecideRequest) { r.WhiteLead = 3 },
		"policy":        func(r *DecideRequest) { r.Policy = "loaded" },
		"negative lead": func(r *DecideRequest) { r.BlackLead = -1 },
	}
	for name, mutate := range tests {
		req := lastHit()
		mutate(&req)
		if _, err := s.Decide(context.Background(), req); !errors.Is(err, ErrBadRequest) {
			t.Errorf("%s: got %v, want ErrBadRequest", name, err)
		}
	}
}

func TestDecideConcurrentIdenticalRequests(t *testing.T) {
	s, _ := newTestServer(t)
	var wg sync.WaitGroup
	results := make([]DecideResponse, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.Decide(context.Background(), lastHit())
		}()
	}
	wg.Wait()
	for i := range results {
		if errs[i] != nil {
			t.Fatal(errs[i])
		}
		if results[i].Move != "Tackle" {
			t.Errorf("request %d chose %q", i, results[i].Choice)
		}
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("got %d %q", res.StatusCode, body)
	}
}

func TestWebsocketRoundTrip(t *testing.T) {
	_, ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/decide"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	bad := lastHit()
	bad.Player = "nobody"
	if err := conn.WriteJSON(bad); err != nil {
		t.Fatal(err)
	}
	var resp DecideResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Fatalf("expected an error response, got %+v", resp)
	}

	// the connection survives a failed request
	if err := conn.WriteJSON(lastHit()); err != nil {
		t.Fatal(err)
	}
	resp = DecideResponse{}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "" || resp.Move != "Tackle" {
		t.Errorf("got %+v", resp)
	}
}
