package trajectory_test

import (
	"context"
	"errors"
	"math"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func run(p trajectory.Params) *trajectory.Trajectory {
	GinkgoHelper()
	res := trajectory.New(physics.Earth, trajectory.DefaultOptions(), nil).Run(context.Background(), p)
	tr, err := trajectory.Unpack(res)
	Expect(err).NotTo(HaveOccurred())
	return tr
}

func relDrift(series []float64) float64 {
	ref := series[0]
	worst := 0.0
	for _, v := range series {
		worst = math.Max(worst, math.Abs(v-ref)/math.Abs(ref))
	}
	return worst
}

var _ = Describe("Trajectory", func() {
	var (
		r0     = physics.Earth.R + 400e3
		period = physics.Earth.CircularPeriod(r0)
	)

	Describe("sampling", func() {
		It("returns the default number of samples starting at the launch state", func() {
			p := trajectory.DefaultParams()
			p.Duration = 600
			tr := run(p)

			Expect(tr.Len()).To(Equal(trajectory.DefaultSamples))
			Expect(tr.Times).To(HaveLen(trajectory.DefaultSamples))
			Expect(tr.Times[0]).To(BeZero())
			Expect(tr.Times[tr.Len()-1]).To(Equal(600.0))
			Expect(tr.Initial()).To(Equal(dynamo.State{6771000, 0, 7800, 0}))
		})

		It("never returns non-finite samples", func() {
			tr := run(trajectory.Params{Mass: 1000, Altitude: 400e3, Speed: 7800, AngleDeg: 90, Duration: 86400})
			for _, s := range tr.States {
				Expect(s.IsValid()).To(BeTrue())
			}
		})
	})

	Describe("conserved quantities", func() {
		DescribeTable("stay constant along the orbit",
			func(speed, angle float64) {
				tr := run(trajectory.Params{Mass: 1000, Altitude: 400e3, Speed: speed, AngleDeg: angle, Duration: 2 * period})

				Expect(relDrift(tr.Series(tr.Energy))).To(BeNumerically("<", 1e-5))
				Expect(relDrift(tr.Series(tr.AngularMomentum))).To(BeNumerically("<", 1e-5))
			},
			Entry("circular", physics.Earth.CircularSpeed(r0), 90.0),
			Entry("eccentric", 7800.0, 90.0),
			Entry("inclined launch", 8200.0, 60.0),
			Entry("retrograde", 7800.0, -90.0),
		)
	})

	Describe("a circular orbit", func() {
		var tr *trajectory.Trajectory

		BeforeEach(func() {
			tr = run(trajectory.Params{
				Mass:     1000,
				Altitude: 400e3,
				Speed:    physics.Earth.CircularSpeed(r0),
				AngleDeg: 90,
				Duration: period,
			})
		})

		It("keeps a constant radius", func() {
			lo, hi := tr.RadiusRange()
			Expect(lo).To(BeNumerically("~", r0, 100))
			Expect(hi).To(BeNumerically("~", r0, 100))
		})

		It("closes after one period", func() {
			first, last := tr.Initial(), tr.Final()
			Expect(math.Hypot(last[0]-first[0], last[1]-first[1])).To(BeNumerically("<", 1000))
		})

		It("moves counterclockwise for a positive angle", func() {
			Expect(tr.States[1][1]).To(BeNumerically(">", 0))
		})
	})

	Describe("the 7800 m/s tangential launch", func() {
		It("stays above the surface on a bound ellipse", func() {
			tr := run(trajectory.Params{Mass: 1000, Altitude: 400e3, Speed: 7800, AngleDeg: 90, Duration: 86400})

			lo, hi := tr.RadiusRange()
			Expect(lo).To(BeNumerically(">", physics.Earth.R))
			Expect(hi).To(BeNumerically("<", 8e6))
			Expect(tr.Energy(0)).To(BeNumerically("<", 0))
		})
	})

	Describe("a radial fall from rest", func() {
		var tr *trajectory.Trajectory

		BeforeEach(func() {
			tr = run(trajectory.Params{Mass: 1000, Altitude: 400e3, Speed: 0, Duration: 600})
		})

		It("stays on the x axis", func() {
			for _, s := range tr.States {
				Expect(s[1]).To(BeZero())
				Expect(s[3]).To(BeZero())
			}
		})

		It("falls monotonically toward the center", func() {
			for i := 1; i < tr.Len(); i++ {
				Expect(tr.States[i][0]).To(BeNumerically("<", tr.States[i-1][0]))
			}
		})
	})

	Describe("a release from rest on the surface", func() {
		It("starts at r = R and falls inward", func() {
			tr := run(trajectory.Params{Mass: 1000, Altitude: 0, Speed: 0, Duration: 60})

			Expect(tr.Radius(0)).To(Equal(physics.Earth.R))
			for i := 1; i < tr.Len(); i++ {
				Expect(tr.States[i][0]).To(BeNumerically("<", tr.States[i-1][0]))
				Expect(tr.States[i][1]).To(BeZero())
			}
		})
	})

	Describe("an escape launch", func() {
		It("has positive energy and recedes", func() {
			p := trajectory.Params{
				Mass:     1000,
				Altitude: 400e3,
				Speed:    1.1 * physics.Earth.EscapeSpeed(r0),
				AngleDeg: 90,
				Duration: 86400,
			}
			tr := run(p)

			Expect(tr.Energy(0)).To(BeNumerically(">", 0))
			Expect(tr.Radius(tr.Len() - 1)).To(BeNumerically(">", 10*r0))
		})
	})

	Describe("the default radial launch over one day", func() {
		It("fails instead of returning a partial trajectory", func() {
			res := trajectory.New(physics.Earth, trajectory.DefaultOptions(), nil).
				Run(context.Background(), trajectory.DefaultParams())

			f, ok := res.(trajectory.Failure)
			Expect(ok).To(BeTrue())
			Expect(f.Reason).To(HaveOccurred())
			Expect(f.Time).To(BeNumerically(">", 0))

			var simErr *dynamo.SimulationError
			Expect(errors.As(f, &simErr)).To(BeTrue())
		})
	})
})
