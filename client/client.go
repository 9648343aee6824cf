// Package client talks to the websocket decision service.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"showdown-sim/server"
)

const defaultTimeout = 30 * time.Second

// DecisionClient sends one request at a time over a single connection.
type DecisionClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
	log  *slog.Logger
}

// Dial connects to the /decide endpoint under serverURL, which may be given
// with an http(s) or ws(s) scheme.
func Dial(ctx context.Context, serverURL string, logger *slog.Logger) (*DecisionClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/decide"

	logger.Info("connecting", "url", u.String())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u, err)
	}
	return &DecisionClient{conn: conn, log: logger}, nil
}

// Decide sends req and waits for its answer. A service-side failure comes
// back as an error carrying the service's message.
func (c *DecisionClient) Decide(ctx context.Context, req server.DecideRequest) (server.DecideResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}
	c.conn.SetWriteDeadline(deadline)
	c.conn.SetReadDeadline(deadline)

	c.log.Debug("sending request", "player", req.Player, "seed", req.Seed)
	if err := c.conn.WriteJSON(req); err != nil {
		return server.DecideResponse{}, fmt.Errorf("send request: %w", err)
	}
	var resp server.DecideResponse
	if err := c.conn.ReadJSON(&resp); err != nil {
		return server.DecideResponse{}, fmt.Errorf("read response: %w", err)
	}
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

func (c *DecisionClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
