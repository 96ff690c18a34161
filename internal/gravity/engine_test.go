package gravity_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/gravity"
)

func body(id string, mass, x, y, vx, vy float64) gravity.Spec {
	return gravity.Spec{
		Mass: mass, X: x, Y: y, VX: vx, VY: vy,
		Tone: gravity.NumberValue(261.63),
		ID:   gravity.StringValue(id),
	}
}

var _ = Describe("State", func() {
	var st *gravity.State

	BeforeEach(func() {
		st = gravity.NewState()
	})

	Context("when never seeded", func() {
		It("returns an empty result on step-only calls", func() {
			res, err := st.Step(nil, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeEmpty())
			Expect(res).NotTo(BeNil())
		})
	})

	Context("with two equal masses 20 units apart", func() {
		var res []gravity.Result

		BeforeEach(func() {
			var err error
			res, err = st.Step([]gravity.Spec{
				body("a", 1, -10, 0, 0, 0),
				body("b", 1, 10, 0, 0, 0),
			}, 0.1)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accelerates each body toward the other by 0.25", func() {
			Expect(res[0].VX).To(BeNumerically("~", 0.25, 1e-12))
			Expect(res[1].VX).To(BeNumerically("~", -0.25, 1e-12))
		})

		It("keeps velocities opposite and the center of mass fixed", func() {
			Expect(res[0].VX).To(Equal(-res[1].VX))
			Expect(res[0].VY).To(Equal(-res[1].VY))
			Expect(res[0].X + res[1].X).To(BeNumerically("~", 0, 1e-12))
		})

		It("conserves momentum across further steps", func() {
			for i := 0; i < 20; i++ {
				_, err := st.Step(nil, 0.1)
				Expect(err).NotTo(HaveOccurred())
			}
			p := gravity.Momentum(st.Bodies())
			Expect(p.X).To(BeNumerically("~", 0, 1e-9))
			Expect(p.Y).To(BeNumerically("~", 0, 1e-9))
		})
	})

	Context("with massless bodies", func() {
		It("never moves them whatever surrounds them", func() {
			specs := []gravity.Spec{
				body("sun", 1000, 0, 0, 0, 0),
				body("dust", 0, 40, 0, 3, 4),
				body("antimatter", -5, -40, 0, -1, 0),
			}
			_, err := st.Step(specs, 0.1)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				res, err := st.Step(nil, 0.1)
				Expect(err).NotTo(HaveOccurred())
				Expect(res[1].X).To(Equal(40.0))
				Expect(res[1].VX).To(Equal(3.0))
				Expect(res[2].X).To(Equal(-40.0))
				Expect(res[2].VX).To(Equal(-1.0))
				Expect(res[0].VX).To(BeZero())
			}
		})
	})

	Context("when reseeded", func() {
		It("drops every body of the previous set", func() {
			_, err := st.Step([]gravity.Spec{body("old1", 1, 0, 0, 0, 0), body("old2", 1, 30, 0, 0, 0)}, 0.1)
			Expect(err).NotTo(HaveOccurred())

			res, err := st.Step([]gravity.Spec{body("new", 1, 0, 0, 0, 0)}, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(1))
			Expect(res[0].ID.String()).To(Equal("new"))
		})

		It("rejects an invalid set without touching the current one", func() {
			Expect(st.Seed([]gravity.Spec{body("keep", 1, 0, 0, 0, 0)})).To(Succeed())

			_, err := st.Step([]gravity.Spec{body("bad", math.Inf(1), 0, 0, 0, 0)}, 0.1)
			Expect(err).To(MatchError(gravity.ErrValidation))

			Expect(st.Bodies()).To(HaveLen(1))
			Expect(st.Bodies()[0].ID.String()).To(Equal("keep"))
		})
	})

	Context("when stepped repeatedly", func() {
		It("advances the retained bodies every call", func() {
			Expect(st.Seed([]gravity.Spec{
				body("star", 100, 0, 0, 0, 0),
				body("planet", 1, 100, 0, 0, 30),
			})).To(Succeed())

			seen := map[[2]float64]bool{}
			for i := 0; i < 10; i++ {
				res, err := st.Step(nil, 0.1)
				Expect(err).NotTo(HaveOccurred())
				key := [2]float64{res[1].X, res[1].Y}
				Expect(seen).NotTo(HaveKey(key))
				seen[key] = true
			}
		})
	})
})
