// Package server exposes the Monte Carlo AI as a websocket decision service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/singleflight"

	"showdown-sim/ai"
	"showdown-sim/battle"
	"showdown-sim/config"
	"showdown-sim/game"
	"showdown-sim/parser"
	"showdown-sim/random"
)

var ErrBadRequest = errors.New("bad request")

// DecideRequest describes a position by two team exports and the index of
// each side's active member.
type DecideRequest struct {
	Black     string `json:"black"`
	White     string `json:"white"`
	BlackLead int    `json:"black_lead"`
	WhiteLead int    `json:"white_lead"`
	BlackHP   *int   `json:"black_hp,omitempty"`
	WhiteHP   *int   `json:"white_hp,omitempty"`
	Player    string `json:"player"`
	Playouts  int    `json:"playouts,omitempty"`
	Policy    string `json:"policy,omitempty"`
	Seed      uint64 `json:"seed"`
}

type StrategyEntry struct {
	Choice      string  `json:"choice"`
	Probability float64 `json:"probability"`
}

type Matrix struct {
	Rows     []string    `json:"rows"`
	Cols     []string    `json:"cols"`
	Values   [][]float64 `json:"values"`
	Playouts [][]int     `json:"playouts"`
}

type DecideResponse struct {
	Choice   string          `json:"choice,omitempty"`
	Move     string          `json:"move,omitempty"`
	Strategy []StrategyEntry `json:"strategy,omitempty"`
	Matrix   *Matrix         `json:"matrix,omitempty"`
	Shared   bool            `json:"shared,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type Server struct {
	dex      parser.Dex
	cfg      config.AIConfig
	log      *slog.Logger
	group    singleflight.Group
	upgrader websocket.Upgrader
}

func New(dex parser.Dex, cfg config.AIConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		dex: dex,
		cfg: cfg,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/decide", s.handleDecide)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// handleDecide answers each request read from the socket in order until the
// peer goes away. Failed requests get an error response; the connection
// stays open.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()
	s.log.Info("decision client connected", "remote", r.RemoteAddr)

	for {
		var req DecideRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("read request", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		resp, err := s.Decide(r.Context(), req)
		if err != nil {
			s.log.Info("decide failed", "remote", r.RemoteAddr, "err", err)
			resp = DecideResponse{Error: err.Error()}
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("write response", "remote", r.RemoteAddr, "err", err)
			return
		}
	}
}

// Decide runs one search. Identical requests in flight at the same time
// share a single search.
func (s *Server) Decide(ctx context.Context, req DecideRequest) (DecideResponse, error) {
	key, err := json.Marshal(req)
	if err != nil {
		return DecideResponse{}, err
	}
	v, err, shared := s.group.Do(string(key), func() (any, error) {
		return s.decide(ctx, req)
	})
	if err != nil {
		return DecideResponse{}, err
	}
	resp := v.(DecideResponse)
	resp.Shared = shared
	return resp, nil
}

func (s *Server) decide(ctx context.Context, req DecideRequest) (DecideResponse, error) {
	b, player, err := s.position(req)
	if err != nil {
		return DecideResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	policyName := req.Policy
	if policyName == "" {
		policyName = s.cfg.Policy
	}
	policy, err := random.ParsePolicy(policyName)
	if err != nil {
		return DecideResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	playouts := req.Playouts
	if playouts <= 0 {
		playouts = s.cfg.Playouts
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	env := battle.NewEnv(random.New(policy, req.Seed), s.log)
	mc := &ai.MonteCarlo{
		Workers:     s.cfg.Workers,
		ChanceFloor: s.cfg.ChanceFloor,
		MaxTurns:    s.cfg.MaxTurns,
	}
	m, err := mc.ComputeExpectedOutcomesMatrix(ctx, env, b, playouts)
	if err != nil {
		return DecideResponse{}, err
	}
	strategy := ai.FindStrategyFromExpectedOutcomes(env, m, player)

	resp := DecideResponse{Matrix: matrixView(m)}
	total := strategy.Total()
	for _, e := range strategy.Entries() {
		resp.Strategy = append(resp.Strategy, StrategyEntry{Choice: e.Value.String(), Probability: e.Weight / total})
	}
	choice, err := strategy.PickOne(env.RNG, s.cfg.ChanceFloor)
	if err != nil {
		return DecideResponse{}, err
	}
	resp.Choice = choice.String()
	resp.Move = choice.Move.Name

	s.log.Info("decided",
		"player", player,
		"choice", resp.Choice,
		"black", b.Active(game.Black).Name(),
		"white", b.Active(game.White).Name(),
		"playouts", playouts,
	)
	return resp, nil
}

func (s *Server) position(req DecideRequest) (battle.Battle, game.Player, error) {
	player, err := game.ParsePlayer(req.Player)
	if err != nil {
		return battle.Battle{}, 0, err
	}
	black, err := lead(req.Black, req.BlackLead, s.dex)
	if err != nil {
		return battle.Battle{}, 0, fmt.Errorf("black: %w", err)
	}
	white, err := lead(req.White, req.WhiteLead, s.dex)
	if err != nil {
		return battle.Battle{}, 0, fmt.Errorf("white: %w", err)
	}
	b := battle.New(black, white)
	if req.BlackHP != nil {
		b = b.WithActive(game.Black, b.Active(game.Black).WithHP(*req.BlackHP))
	}
	if req.WhiteHP != nil {
		b = b.WithActive(game.White, b.Active(game.White).WithHP(*req.WhiteHP))
	}
	return b, player, nil
}

func lead(export string, index int, dex parser.Dex) (*game.PokemonSpec, error) {
	team, err := parser.ParseTeam(export, dex)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(team) {
		return nil, fmt.Errorf("lead %d out of range for %d members", index, len(team))
	}
	return team[index], nil
}

func matrixView(m ai.OutcomeMatrix) *Matrix {
	view := &Matrix{Values: m.Values, Playouts: m.Playouts}
	for _, c := range m.Rows {
		view.Rows = append(view.Rows, c.String())
	}
	for _, c := range m.Cols {
		view.Cols = append(view.Cols, c.String())
	}
	return view
}
