package sim_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/sim"
)

var _ = Describe("Driver", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.DefaultConfig()
		cfg.TickDelay = time.Millisecond
		cfg.MaxIterations = 10
	})

	It("emits the initial frame and one frame per tick", func() {
		e, err := sim.New(square(), cfg)
		Expect(err).NotTo(HaveOccurred())

		var ticks []int
		err = sim.NewDriver(e).Run(context.Background(), func(f sim.Frame) error {
			ticks = append(ticks, f.Tick)
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(ticks).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	})

	It("stops early on settle when configured", func() {
		cfg.MaxIterations = 400
		cfg.InitialTemperature = 1
		cfg.CoolingFactor = 0.5
		cfg.MinTemperature = 0.2
		cfg.StopOnSettle = true
		e, err := sim.New(square(), cfg)
		Expect(err).NotTo(HaveOccurred())

		var last sim.Frame
		err = sim.NewDriver(e).Run(context.Background(), func(f sim.Frame) error {
			last = f
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(last.Tick).To(Equal(3))
		Expect(last.Status).To(Equal(sim.Cooled))
	})

	It("propagates callback errors", func() {
		e, err := sim.New(square(), cfg)
		Expect(err).NotTo(HaveOccurred())

		boom := errors.New("boom")
		err = sim.NewDriver(e).Run(context.Background(), func(f sim.Frame) error {
			if f.Tick == 2 {
				return boom
			}
			return nil
		})
		Expect(err).To(MatchError(boom))
		Expect(e.Ticks()).To(Equal(2))
	})

	It("honours cancellation", func() {
		cfg.MaxIterations = 1_000_000
		e, err := sim.New(square(), cfg)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		err = sim.NewDriver(e).Run(ctx, func(f sim.Frame) error {
			if f.Tick == 3 {
				cancel()
			}
			return nil
		})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("restarts from reseeded positions", func() {
		cfg.MaxIterations = 1_000_000
		e, err := sim.New(square(), cfg)
		Expect(err).NotTo(HaveOccurred())

		fresh := []r2.Vec{{X: 1}, {X: 2}, {X: 3}, {X: 4}}
		d := sim.NewDriver(e)
		d.OnRestart(func() []r2.Vec { return fresh })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		restarted := false
		err = d.Run(ctx, func(f sim.Frame) error {
			switch {
			case !restarted && f.Tick == 5:
				restarted = true
				d.Send(sim.Restart)
			case restarted && f.Tick == 0:
				Expect(f.Positions).To(Equal(fresh))
				cancel()
			}
			return nil
		})
		Expect(err).To(MatchError(context.Canceled))
		Expect(restarted).To(BeTrue())
	})
})
