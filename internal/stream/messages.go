package stream

import (
	"time"

	"github.com/san-kum/frlayout/internal/sim"
)

// SessionConfig is the first message a client sends. Empty fields fall back
// to the server's configuration.
type SessionConfig struct {
	Graph       string `json:"graph"`
	Preset      string `json:"preset,omitempty"`
	Placement   string `json:"placement,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
	TickDelayMs *int   `json:"tick_delay_ms,omitempty"`
}

// Command is a client message sent while a session runs.
type Command struct {
	Command string `json:"command"`
}

const (
	TypeFrame = "frame"
	TypeDone  = "done"
	TypeError = "error"
)

type FrameMessage struct {
	Type        string       `json:"type"`
	Tick        int          `json:"tick"`
	Temperature float64      `json:"temperature"`
	Status      string       `json:"status"`
	IDs         []string     `json:"ids,omitempty"`
	Positions   [][2]float64 `json:"positions"`
	Edges       [][2]int     `json:"edges,omitempty"`
}

type DoneMessage struct {
	Type      string `json:"type"`
	Status    string `json:"status"`
	Ticks     int    `json:"ticks"`
	Settled   bool   `json:"settled"`
	SettledAt int    `json:"settled_at"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// newFrameMessage converts a frame. Topology is only included when full is
// set, which the server does for the first frame and after a restart.
func newFrameMessage(f sim.Frame, full bool) FrameMessage {
	msg := FrameMessage{
		Type:        TypeFrame,
		Tick:        f.Tick,
		Temperature: f.Temperature,
		Status:      f.Status.String(),
		Positions:   make([][2]float64, len(f.Positions)),
	}
	for i, p := range f.Positions {
		msg.Positions[i] = [2]float64{p.X, p.Y}
	}
	if full {
		msg.IDs = f.IDs
		msg.Edges = make([][2]int, len(f.Edges))
		for i, e := range f.Edges {
			msg.Edges[i] = [2]int{e.Source, e.Target}
		}
	}
	return msg
}

func parseCommand(s string) (sim.Command, bool) {
	switch s {
	case "pause":
		return sim.Pause, true
	case "resume":
		return sim.Resume, true
	case "restart":
		return sim.Restart, true
	}
	return 0, false
}

func tickDelay(ms *int, fallback time.Duration) time.Duration {
	if ms == nil || *ms < 0 {
		return fallback
	}
	return time.Duration(*ms) * time.Millisecond
}
