package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/sim"
)

type countingMetric struct {
	observed int
	resets   int
}

func (m *countingMetric) Name() string                         { return "count" }
func (m *countingMetric) Observe(*graph.Graph, []float64, int) { m.observed++ }
func (m *countingMetric) Value() float64                       { return float64(m.observed) }
func (m *countingMetric) Reset()                               { m.observed = 0; m.resets++ }

var _ = Describe("Engine", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.DefaultConfig()
	})

	Describe("New", func() {
		It("rejects invalid configs", func() {
			bad := []func(*sim.Config){
				func(c *sim.Config) { c.Width = 0 },
				func(c *sim.Config) { c.Height = -1 },
				func(c *sim.Config) { c.InitialTemperature = 0 },
				func(c *sim.Config) { c.CoolingFactor = 1 },
				func(c *sim.Config) { c.CoolingFactor = 0 },
				func(c *sim.Config) { c.MinTemperature = 0 },
				func(c *sim.Config) { c.MaxIterations = 0 },
				func(c *sim.Config) { c.ForceConstant = 0 },
				func(c *sim.Config) { c.Margin = 1.0 },
				func(c *sim.Config) { c.Gravity = -0.1 },
				func(c *sim.Config) { c.Width = math.NaN() },
			}
			for _, mutate := range bad {
				c := sim.DefaultConfig()
				mutate(&c)
				_, err := sim.New(square(), c)
				Expect(err).To(MatchError(sim.ErrInvalidConfig))
			}
		})

		It("rejects a nil graph", func() {
			_, err := sim.New(nil, cfg)
			Expect(err).To(MatchError(sim.ErrNilGraph))
		})

		It("derives the ideal distance from the area", func() {
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.K()).To(BeNumerically("~", math.Sqrt(1.3*800*800/4), 1e-9))
		})
	})

	Describe("Tick", func() {
		It("keeps every vertex inside the clamp box", func() {
			g := square()
			g.SetPosition(0, r2.Vec{X: 5000, Y: -5000})
			e, err := sim.New(g, cfg)
			Expect(err).NotTo(HaveOccurred())

			limit := (cfg.Margin - 0.1) * cfg.Width
			for i := 0; i < 50; i++ {
				e.Tick()
				for _, p := range g.Positions() {
					Expect(math.Abs(p.X)).To(BeNumerically("<=", limit))
					Expect(math.Abs(p.Y)).To(BeNumerically("<=", limit))
				}
			}
		})

		It("moves no vertex further than the temperature", func() {
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 100; i++ {
				temp := e.Temperature()
				e.Tick()
				for _, m := range e.LastMoved() {
					Expect(m).To(BeNumerically("<=", temp+1e-9))
				}
			}
		})

		It("separates coincident vertices without NaN", func() {
			g, err := graph.New([]string{"A", "B"}, []graph.Edge{{Source: 0, Target: 1}})
			Expect(err).NotTo(HaveOccurred())
			e, err := sim.New(g, cfg)
			Expect(err).NotTo(HaveOccurred())

			e.Tick()
			a, b := g.Position(0), g.Position(1)
			for _, v := range []float64{a.X, a.Y, b.X, b.Y} {
				Expect(math.IsNaN(v)).To(BeFalse())
			}
			Expect(r2.Norm(r2.Sub(a, b))).To(BeNumerically(">", 0))
		})

		It("does nothing once the iteration cap is reached", func() {
			cfg.MaxIterations = 5
			g := square()
			e, err := sim.New(g, cfg)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 5; i++ {
				Expect(e.Tick()).To(Equal(sim.Running))
			}
			Expect(e.Status()).To(Equal(sim.Exhausted))

			before := g.Positions()
			temp := e.Temperature()
			Expect(e.Tick()).To(Equal(sim.Exhausted))
			Expect(e.Ticks()).To(Equal(5))
			Expect(g.Positions()).To(Equal(before))
			Expect(e.Temperature()).To(Equal(temp))
		})

		It("feeds metrics and observers once per tick", func() {
			m := &countingMetric{}
			var frames []sim.Frame
			e, err := sim.New(square(), cfg,
				sim.WithMetric(m),
				sim.WithObserver(sim.ObserverFunc(func(f sim.Frame) { frames = append(frames, f) })),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.resets).To(Equal(1))

			for i := 0; i < 3; i++ {
				e.Tick()
			}
			Expect(m.observed).To(Equal(3))
			Expect(frames).To(HaveLen(3))
			Expect(frames[2].Tick).To(Equal(3))
			Expect(frames[2].IDs).To(Equal([]string{"A", "B", "C", "D"}))
		})
	})

	Describe("Run", func() {
		It("cools a small graph before the cap", func() {
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(sim.Cooled))
			Expect(res.Settled).To(BeTrue())
			Expect(res.SettledAt).To(Equal(167))
			Expect(res.Ticks).To(Equal(cfg.MaxIterations))
			Expect(res.Temperatures).To(HaveLen(cfg.MaxIterations + 1))
			Expect(res.Initial).NotTo(Equal(res.Final))
		})

		It("stops at settle when asked to", func() {
			cfg.StopOnSettle = true
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(167))
			Expect(res.Reason).To(Equal(sim.Cooled))
		})

		It("reports exhaustion when the cap comes first", func() {
			cfg.MaxIterations = 20
			cfg.RecordFrames = true
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(sim.Exhausted))
			Expect(res.Settled).To(BeFalse())
			Expect(res.Frames).To(HaveLen(21))
		})

		It("settles at tick zero on a cold start and still runs to the cap", func() {
			cfg.InitialTemperature = 0.01
			cfg.MaxIterations = 30
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status()).To(Equal(sim.Cooled))
			Expect(e.Done(false)).To(BeFalse())
			Expect(e.Done(true)).To(BeTrue())

			res, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.SettledAt).To(Equal(0))
			Expect(res.Ticks).To(Equal(30))
			Expect(res.Reason).To(Equal(sim.Cooled))
		})

		It("returns the partial result on cancellation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := e.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Ticks).To(BeZero())
			Expect(res.Reason).To(Equal(sim.Running))
		})
	})

	Describe("Reset", func() {
		It("restarts annealing from new positions", func() {
			g := square()
			start := g.Positions()
			e, err := sim.New(g, cfg)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 10; i++ {
				e.Tick()
			}

			Expect(e.Reset(start)).To(Succeed())
			Expect(e.Ticks()).To(BeZero())
			Expect(e.Temperature()).To(Equal(cfg.InitialTemperature))
			Expect(g.Positions()).To(Equal(start))
			Expect(e.Reset(start[:2])).NotTo(Succeed())
		})
	})
})
