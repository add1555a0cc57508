package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/policy"
	"github.com/wricardo/mcp-training/quoridor/game/service"
)

var errNoProgress = errors.New("server did not advance the computer seat")

type remoteOptions struct {
	URL        string
	SessionID  string
	Board      string
	Opponent   string
	Policy     string
	Seed       int64
	MaxActions int
}

// remoteClient talks to the REST API of a running server
type remoteClient struct {
	baseURL string
	client  *http.Client
}

func newRemoteClient(baseURL string) *remoteClient {
	return &remoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *remoteClient) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s %s failed: %s", method, path, errResp.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *remoteClient) createSession(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *remoteClient) session(ctx context.Context, id string) (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *remoteClient) act(ctx context.Context, id string, action engine.Action) (*service.ActionResult, error) {
	path := "/api/sessions/" + url.PathEscape(id)
	var body interface{}
	switch action.Type {
	case engine.MoveAction:
		path += "/move"
		body = map[string]int{"x": action.To.X, "y": action.To.Y}
	case engine.WallAction:
		path += "/wall"
		body = map[string]interface{}{"orientation": action.Wall.Orientation, "x": action.Wall.X, "y": action.Wall.Y}
	default:
		return nil, fmt.Errorf("%w: %s", engine.ErrInvalidAction, action)
	}

	var result service.ActionResult
	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *remoteClient) advance(ctx context.Context, id string) (*service.ActionResult, error) {
	var result service.ActionResult
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/advance", map[string]int{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// runRemote plays every human seat of a session with a local policy until
// the game ends
func runRemote(ctx context.Context, out io.Writer, opts remoteOptions) error {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	local, err := policy.New(opts.Policy, seed)
	if err != nil {
		return err
	}

	client := newRemoteClient(opts.URL)

	var info *service.SessionInfo
	if opts.SessionID == "" {
		info, err = client.createSession(ctx, service.CreateSessionRequest{
			ConfigID:  opts.Board,
			PlayerOne: policy.Human,
			PlayerTwo: opts.Opponent,
		})
	} else {
		info, err = client.session(ctx, opts.SessionID)
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"session":    info.ID,
		"config":     info.ConfigName,
		"player_one": info.Controllers[0],
		"player_two": info.Controllers[1],
		"policy":     opts.Policy,
	}).Info("playing remote session")

	state := info.GameState
	actions := 0
	for !state.GameOver {
		if err := ctx.Err(); err != nil {
			return err
		}

		seat := state.ToMove
		if info.Controllers[seat] != policy.Human {
			result, err := client.advance(ctx, info.ID)
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%w: %s", errNoProgress, result.Message)
			}
			state = result.GameState
			continue
		}

		if actions >= opts.MaxActions {
			return fmt.Errorf("gave up after %d actions", actions)
		}

		action, err := local.Decide(state.Grid.Clone(), state.Players[seat], state.Players[seat.Other()])
		if err != nil {
			return fmt.Errorf("%s policy failed: %w", seat, err)
		}
		result, err := client.act(ctx, info.ID, action)
		if err != nil {
			return err
		}
		actions++

		for _, applied := range result.Applied {
			fmt.Fprintf(out, "%d. %s (%s): %s\n", applied.Turn, applied.Seat, applied.Controller, applied.Action)
		}
		state = result.GameState
	}

	winner := state.Result.Winner
	fmt.Fprintf(out, "session %s: %s (%s) wins after %d turns\n",
		info.ID, winner, info.Controllers[winner], state.Result.Turns)
	return nil
}
