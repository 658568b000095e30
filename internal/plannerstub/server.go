// Package plannerstub is a fixture planner that speaks the planner HTTP
// contract. Risk is a distance falloff around each threat and paths come from
// an A* search weighted by terrain cost and risk.
package plannerstub

import (
	"encoding/json"
	"math/rand"
	"net"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Garsondee/battlepath/internal/model"
)

// Options configures the fixture map and server.
type Options struct {
	Rows        int
	Cols        int
	Enemies     int
	Seed        int64
	AccessLog   bool
	RandomSize  int  // threats per /randomize call
	OpenTerrain bool // every cell OPEN, for predictable routes
}

// DefaultOptions returns a 15×20 map with three scripted threats.
func DefaultOptions() Options {
	return Options{Rows: 15, Cols: 20, Enemies: 3, Seed: 42, RandomSize: 3}
}

// Server holds the fixture map and the fiber app serving it.
type Server struct {
	app  *fiber.App
	m    *battleMap
	opts Options

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds the fixture map and routes.
func New(opts Options) *Server {
	def := DefaultOptions()
	if opts.Rows <= 0 {
		opts.Rows = def.Rows
	}
	if opts.Cols <= 0 {
		opts.Cols = def.Cols
	}
	if opts.RandomSize <= 0 {
		opts.RandomSize = def.RandomSize
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	s := &Server{
		m:    generateMap(opts.Rows, opts.Cols, opts.Enemies, opts.OpenTerrain, rng),
		opts: opts,
		rng:  rng,
	}

	app := fiber.New(fiber.Config{AppName: "BattlePath planner stub"})
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path} | X-Request-ID: ${reqHeader:X-Request-ID}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api := app.Group("/api")
	api.Get("/map", s.handleMap)
	api.Post("/path", s.handlePath)
	api.Get("/randomize", s.handleRandomize)

	s.app = app
	return s
}

// App exposes the fiber app, e.g. for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) handleMap(c fiber.Ctx) error {
	m := s.m
	cells := make([][]string, m.rows)
	costs := make([][]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		cells[r] = make([]string, m.cols)
		costs[r] = make([]float64, m.cols)
		for col := 0; col < m.cols; col++ {
			cells[r][col] = m.cells[r][col].String()
			costs[r][col] = m.cost(model.Cell{Row: r, Col: col})
		}
	}
	return c.JSON(fiber.Map{
		"rows":  m.rows,
		"cols":  m.cols,
		"cells": cells,
		"costs": costs,
		"meta":  m.meta(),
	})
}

// pathRequest mirrors the client body loosely: enemy entries that do not
// decode are skipped rather than failing the request.
type pathRequest struct {
	Mode    string            `json:"mode"`
	Enemies []json.RawMessage `json:"enemies"`
	Start   *model.Cell       `json:"start"`
	Goal    *model.Cell       `json:"goal"`
}

func (s *Server) handlePath(c fiber.Ctx) error {
	var req pathRequest
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
		}
	}
	if req.Mode == "" {
		req.Mode = "SAFEST"
	}

	threats := s.m.enemies
	if req.Enemies != nil {
		threats = make([]model.Threat, 0, len(req.Enemies))
		for _, raw := range req.Enemies {
			var t model.Threat
			if err := json.Unmarshal(raw, &t); err != nil {
				continue
			}
			threats = append(threats, t)
		}
	}

	start, goal := s.m.start, s.m.goal
	if req.Start != nil {
		start = *req.Start
	}
	if req.Goal != nil {
		goal = *req.Goal
	}
	if !s.m.inBounds(start) || !s.m.inBounds(goal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start or goal outside the map"})
	}

	risk := computeRisk(s.m.rows, s.m.cols, threats)
	path, total, found := s.m.findPath(start, goal, risk, riskWeight(req.Mode))
	var totalOut any = total
	if !found {
		// Unreachable goal: empty path and a non-finite total.
		path, totalOut = []model.Cell{}, nil
	}

	rounded := make([][]float64, len(risk))
	for r, row := range risk {
		rounded[r] = make([]float64, len(row))
		for col, v := range row {
			rounded[r][col] = round4(v)
		}
	}
	return c.JSON(fiber.Map{
		"path":  path,
		"total": totalOut,
		"start": start,
		"goal":  goal,
		"risk_sample": fiber.Map{
			"start": round4(risk[start.Row][start.Col]),
			"goal":  round4(risk[goal.Row][goal.Col]),
		},
		"risk": rounded,
	})
}

func (s *Server) handleRandomize(c fiber.Ctx) error {
	s.mu.Lock()
	enemies := make([]model.Threat, s.opts.RandomSize)
	for i := range enemies {
		enemies[i] = model.Threat{
			Row:    s.rng.Intn(s.m.rows),
			Col:    s.rng.Intn(s.m.cols),
			Radius: float64(3 + s.rng.Intn(4)),
		}
	}
	s.mu.Unlock()
	return c.JSON(fiber.Map{"enemies": enemies})
}
