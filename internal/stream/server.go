package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gorilla/websocket"

	"github.com/san-kum/frlayout/internal/config"
	"github.com/san-kum/frlayout/internal/loader"
	"github.com/san-kum/frlayout/internal/sim"
)

var ErrNoGraph = errors.New("stream: session names no graph")

// Server streams live layouts over websockets. Each connection gets its own
// graph and engine.
type Server struct {
	dir      string
	base     *config.Config
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer serves graphs from dir using base as the default configuration.
func NewServer(dir string, base *config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		dir:  dir,
		base: base,
		log:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.session)
	mux.HandleFunc("/graphs", s.graphs)
	return mux
}

func (s *Server) graphs(w http.ResponseWriter, r *http.Request) {
	names, err := loader.List(s.dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(names); err != nil {
		s.log.Error("encode graph list", "err", err)
	}
}

// engine builds the session's engine from the server defaults and the
// client's overrides.
func (s *Server) engine(sc SessionConfig) (*sim.Engine, *config.Config, error) {
	if sc.Graph == "" {
		return nil, nil, ErrNoGraph
	}
	cfg := *s.base
	if sc.Preset != "" {
		p := config.GetPreset(sc.Preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset %q", sc.Preset)
		}
		cfg = *p
	}
	if sc.Placement != "" {
		cfg.Placement = sc.Placement
	}
	if sc.Seed != nil {
		cfg.Seed = *sc.Seed
	}
	cfg.TickDelay = tickDelay(sc.TickDelayMs, cfg.TickDelay)

	path := filepath.Join(s.dir, filepath.Base(sc.Graph))
	g, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	cfg.Graph = path
	e, err := cfg.NewEngine(g, sim.WithLogger(s.log))
	if err != nil {
		return nil, nil, err
	}
	return e, &cfg, nil
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("ws upgrade", "err", err)
		return
	}
	defer c.Close()

	ws := NewSocket(c)

	var sc SessionConfig
	if err := ws.ReadJSON(&sc); err != nil {
		s.log.Error("ws config read", "err", err)
		return
	}

	e, cfg, err := s.engine(sc)
	if err != nil {
		s.log.Warn("session rejected", "graph", sc.Graph, "err", err)
		_ = ws.WriteJSON(ErrorMessage{Type: TypeError, Error: err.Error()})
		return
	}
	log := s.log.With("graph", sc.Graph)
	log.Info("session started", "vertices", e.Graph().Len(), "edges", e.Graph().EdgeCount())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	d := sim.NewDriver(e)
	d.OnRestart(cfg.Reseeder(e.Graph().Len()))

	go func() {
		// Any read error means the client went away.
		defer cancel()
		for {
			var cmd Command
			if err := ws.ReadJSON(&cmd); err != nil {
				return
			}
			next, ok := parseCommand(cmd.Command)
			if !ok {
				log.Warn("unknown command", "command", cmd.Command)
				continue
			}
			d.Send(next)
		}
	}()

	lastTick := -1
	err = d.Run(ctx, func(f sim.Frame) error {
		full := f.Tick <= lastTick || lastTick < 0
		lastTick = f.Tick
		return ws.WriteJSON(newFrameMessage(f, full))
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error("session ended", "err", err)
		}
		return
	}

	done := DoneMessage{
		Type:      TypeDone,
		Status:    e.Status().String(),
		Ticks:     e.Ticks(),
		Settled:   e.Settled(),
		SettledAt: e.SettledAt(),
	}
	if err := ws.WriteJSON(done); err != nil {
		log.Error("write done", "err", err)
		return
	}
	log.Info("session finished", "status", done.Status, "ticks", done.Ticks)
}
