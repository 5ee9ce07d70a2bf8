package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/frlayout/internal/sim"
)

var _ = Describe("Schedule", func() {
	It("decays geometrically", func() {
		s := sim.NewSchedule(250, 0.95, 0.05)
		for n := 1; n <= 50; n++ {
			s.Decay()
			Expect(s.Ticks()).To(Equal(n))
			Expect(s.Temperature()).To(BeNumerically("~", 250*math.Pow(0.95, float64(n)), 1e-9))
		}
	})

	It("settles at the first tick below the minimum", func() {
		s := sim.NewSchedule(250, 0.95, 0.05)
		for !s.Settled() {
			Expect(s.Temperature()).To(BeNumerically(">=", 0.05))
			s.Decay()
		}
		Expect(s.SettledAt()).To(Equal(167))
		Expect(s.Ticks()).To(Equal(167))
		Expect(s.Temperature()).To(BeNumerically("<", 0.05))
	})

	It("never reverts once settled", func() {
		s := sim.NewSchedule(1, 0.5, 0.3)
		s.Decay()
		s.Decay()
		Expect(s.Settled()).To(BeTrue())
		at := s.SettledAt()
		for i := 0; i < 20; i++ {
			s.Decay()
			Expect(s.Settled()).To(BeTrue())
			Expect(s.SettledAt()).To(Equal(at))
		}
	})

	It("starts settled when the initial temperature is below the minimum", func() {
		s := sim.NewSchedule(0.01, 0.95, 0.05)
		Expect(s.Settled()).To(BeTrue())
		Expect(s.SettledAt()).To(Equal(0))
		s.Decay()
		Expect(s.SettledAt()).To(Equal(0))
	})

	It("resets to its initial state", func() {
		s := sim.NewSchedule(10, 0.5, 1)
		for i := 0; i < 5; i++ {
			s.Decay()
		}
		Expect(s.Settled()).To(BeTrue())
		s.Reset()
		Expect(s.Settled()).To(BeFalse())
		Expect(s.Ticks()).To(BeZero())
		Expect(s.Temperature()).To(Equal(10.0))
	})
})
