// Package results records finished games and ranks controllers by wins.
//
// Only the final result of a game is kept: who played each seat, who won
// and how many turns it took. MemoryStore serves single-process use and
// tests; RedisStore keeps a shared leaderboard in Redis sorted sets.
package results

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

// DefaultRecentLimit bounds how many records Recent keeps
const DefaultRecentLimit = 100

var ErrInvalidRecord = errors.New("invalid result record")

// Record is the final result of one game
type Record struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"session_id,omitempty"`
	ConfigName string      `json:"config_name"`
	Players    [2]string   `json:"players"`
	Winner     engine.Seat `json:"winner"`
	Turns      int         `json:"turns"`
	FinishedAt time.Time   `json:"finished_at"`
}

// WinnerName returns the controller that won
func (r Record) WinnerName() string {
	return r.Players[r.Winner]
}

// Standing is a controller's aggregate record. Games counts seats played,
// so a controller playing itself scores one win in two games.
type Standing struct {
	Controller string  `json:"controller"`
	Wins       int     `json:"wins"`
	Games      int     `json:"games"`
	WinRate    float64 `json:"win_rate"`
}

// Store persists finished games
type Store interface {
	Record(ctx context.Context, record Record) (Record, error)
	Standings(ctx context.Context, limit int) ([]Standing, error)
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// NewRecord builds a record for a finished game
func NewRecord(sessionID, configName string, players [2]string, result engine.GameResult) Record {
	return Record{
		SessionID:  sessionID,
		ConfigName: configName,
		Players:    players,
		Winner:     result.Winner,
		Turns:      result.Turns,
	}
}

// prepare validates record and fills in its ID and finish time
func prepare(record Record) (Record, error) {
	if record.Players[0] == "" || record.Players[1] == "" {
		return record, errors.Join(ErrInvalidRecord, errors.New("both controllers are required"))
	}
	if record.Winner != engine.PlayerOne && record.Winner != engine.PlayerTwo {
		return record, errors.Join(ErrInvalidRecord, errors.New("unknown winner"))
	}
	if record.Turns <= 0 {
		return record, errors.Join(ErrInvalidRecord, errors.New("turns must be positive"))
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = time.Now()
	}
	return record, nil
}

// rank orders standings by wins, then win rate, then name, and truncates
// to limit when limit is positive
func rank(standings []Standing, limit int) []Standing {
	for i := range standings {
		if standings[i].Games > 0 {
			standings[i].WinRate = float64(standings[i].Wins) / float64(standings[i].Games)
		}
	}
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.Controller < b.Controller
	})
	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	return standings
}

// seats returns the controller of each seat. A mirror match lists the same
// controller twice, so it counts as two games and one win for it.
func seats(record Record) []string {
	return record.Players[:]
}
