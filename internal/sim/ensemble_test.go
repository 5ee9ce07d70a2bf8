package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/frlayout/internal/sim"
)

var _ = Describe("Ensemble", func() {
	It("runs every engine and keeps results in order", func() {
		en := sim.NewEnsemble(2)
		for _, iters := range []int{5, 10, 15} {
			cfg := sim.DefaultConfig()
			cfg.MaxIterations = iters
			e, err := sim.New(square(), cfg)
			Expect(err).NotTo(HaveOccurred())
			en.Add(e)
		}
		Expect(en.Len()).To(Equal(3))

		results, err := en.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, iters := range []int{5, 10, 15} {
			Expect(results[i].Ticks).To(Equal(iters))
			Expect(results[i].Reason).To(Equal(sim.Exhausted))
		}
	})

	It("fails when the context is already cancelled", func() {
		e, err := sim.New(square(), sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = sim.NewEnsemble(0, e).Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})
