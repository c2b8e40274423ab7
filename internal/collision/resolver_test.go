package collision_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/logging"
)

const tol = 1e-9

func body(x, y, vx, vy, radius, mass float64) dynamo.Body {
	b, err := dynamo.NewBody(dynamo.Vec2{X: x, Y: y}, dynamo.Vec2{X: vx, Y: vy}, radius, mass)
	Expect(err).NotTo(HaveOccurred())
	return b
}

func momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass()))
	}
	return p
}

func kinetic(bodies []dynamo.Body) float64 {
	e := 0.0
	for _, b := range bodies {
		e += 0.5 * b.Mass() * b.Velocity.LengthSquared()
	}
	return e
}

var _ = Describe("Resolver", func() {
	var (
		resolver *collision.Resolver
		bounds   dynamo.Vec2
	)

	BeforeEach(func() {
		resolver = collision.NewResolver(collision.PolicyIndependent, 0, nil)
		bounds = dynamo.Vec2{X: 20, Y: 20}
	})

	Describe("a single pass", func() {
		It("swaps velocities in an equal-mass head-on collision", func() {
			bodies := []dynamo.Body{
				body(-0.4, 0, 5, 0, 0.5, 1),
				body(0.4, 0, -5, 0, 0.5, 1),
			}

			ps := resolver.Pass(bodies, bounds)

			Expect(ps.Pairwise).To(Equal(1))
			Expect(bodies[0].Velocity.X).To(BeNumerically("~", -5, tol))
			Expect(bodies[0].Velocity.Y).To(BeNumerically("~", 0, tol))
			Expect(bodies[1].Velocity.X).To(BeNumerically("~", 5, tol))
			Expect(bodies[1].Velocity.Y).To(BeNumerically("~", 0, tol))
		})

		It("conserves momentum and kinetic energy for unequal masses at an angle", func() {
			bodies := []dynamo.Body{
				body(0, 0, 3, 1, 1, 2),
				body(1.2, 0.9, -1, -2, 0.6, 0.7),
			}
			p0, e0 := momentum(bodies), kinetic(bodies)

			ps := resolver.Pass(bodies, bounds)

			Expect(ps.Pairwise).To(Equal(1))
			p1, e1 := momentum(bodies), kinetic(bodies)
			Expect(p1.X).To(BeNumerically("~", p0.X, tol))
			Expect(p1.Y).To(BeNumerically("~", p0.Y, tol))
			Expect(e1).To(BeNumerically("~", e0, tol))
		})

		It("leaves overlapping bodies that are moving apart alone", func() {
			bodies := []dynamo.Body{
				body(-0.4, 0, -5, 0, 0.5, 1),
				body(0.4, 0, 5, 0, 0.5, 1),
			}

			ps := resolver.Pass(bodies, bounds)

			Expect(ps.Changed()).To(BeFalse())
			Expect(bodies[0].Velocity).To(Equal(dynamo.Vec2{X: -5}))
			Expect(bodies[1].Velocity).To(Equal(dynamo.Vec2{X: 5}))
		})

		It("reflects a body touching a wall and keeps its tangential velocity", func() {
			bodies := []dynamo.Body{body(3, 9.5, 2, 4, 0.5, 1)}

			ps := resolver.Pass(bodies, dynamo.Vec2{X: 10, Y: 10})

			Expect(ps.Boundary).To(Equal(1))
			Expect(bodies[0].Velocity).To(Equal(dynamo.Vec2{X: 2, Y: -4}))
		})

		It("reflects both axes in a corner", func() {
			bodies := []dynamo.Body{body(-9.8, -9.8, -1, -3, 0.5, 1)}

			resolver.Pass(bodies, dynamo.Vec2{X: 10, Y: 10})

			Expect(bodies[0].Velocity).To(Equal(dynamo.Vec2{X: 1, Y: 3}))
		})

		It("does not reflect a body already heading back inside", func() {
			bodies := []dynamo.Body{body(0, 10.2, 0, -3, 0.5, 1)}

			ps := resolver.Pass(bodies, dynamo.Vec2{X: 10, Y: 10})

			Expect(ps.Changed()).To(BeFalse())
			Expect(bodies[0].Velocity).To(Equal(dynamo.Vec2{Y: -3}))
		})

		It("skips a near-coincident approaching pair and counts it", func() {
			bodies := []dynamo.Body{
				body(0, 0, 1, 0, 0.5, 1),
				body(1e-160, 0, 0, 0, 0.5, 1),
			}

			ps := resolver.Pass(bodies, bounds)

			Expect(ps.Degenerate).To(Equal(1))
			Expect(ps.Pairwise).To(BeZero())
			Expect(bodies[0].Velocity).To(Equal(dynamo.Vec2{X: 1}))
		})

		It("is a no-op on an empty store", func() {
			Expect(resolver.Pass(nil, bounds)).To(Equal(collision.PassStats{}))
		})
	})

	Describe("policies", func() {
		// body 0 touches the right wall and overlaps body 1 while moving into both
		newScene := func() []dynamo.Body {
			return []dynamo.Body{
				body(9.5, 0, 2, 0, 0.5, 1),
				body(8.7, 0, 1, 0, 0.5, 1),
			}
		}
		wall := dynamo.Vec2{X: 10, Y: 10}

		It("applies wall and pairwise corrections together when independent", func() {
			bodies := newScene()

			ps := resolver.Pass(bodies, wall)

			Expect(ps.Boundary).To(Equal(1))
			Expect(ps.Pairwise).To(Equal(1))
		})

		It("skips the pairwise scan after a wall bounce when exclusive", func() {
			resolver.Policy = collision.PolicyExclusive
			bodies := newScene()

			ps := resolver.Pass(bodies, wall)

			Expect(ps.Boundary).To(Equal(1))
			Expect(ps.Pairwise).To(BeZero())
			Expect(bodies[1].Velocity).To(Equal(dynamo.Vec2{X: 1}))
		})

		It("converges under both policies", func() {
			for _, p := range []collision.Policy{collision.PolicyIndependent, collision.PolicyExclusive} {
				resolver.Policy = p
				st := resolver.Resolve(newScene(), wall)
				Expect(st.Converged).To(BeTrue(), p.String())
			}
		})
	})

	Describe("the fixed-point loop", func() {
		It("propagates a hit along a touching row", func() {
			bodies := []dynamo.Body{
				body(0, 0, 1, 0, 0.5, 1),
				body(1, 0, 0, 0, 0.5, 1),
				body(2, 0, 0, 0, 0.5, 1),
			}

			st := resolver.Resolve(bodies, bounds)

			Expect(st.Converged).To(BeTrue())
			Expect(st.Passes).To(Equal(2))
			Expect(st.Pairwise).To(Equal(2))
			Expect(bodies[0].Velocity.X).To(BeNumerically("~", 0, tol))
			Expect(bodies[1].Velocity.X).To(BeNumerically("~", 0, tol))
			Expect(bodies[2].Velocity.X).To(BeNumerically("~", 1, tol))
		})

		It("does nothing on a resolved configuration", func() {
			bodies := []dynamo.Body{
				body(-3, 0, 5, 1, 1, 1),
				body(3, 2, -5, 0, 1, 2),
				body(0, 9.8, 1, 4, 0.5, 1),
				body(0.5, 9.3, -1, -4, 0.5, 1),
			}
			st := resolver.Resolve(bodies, dynamo.Vec2{X: 10, Y: 10})
			Expect(st.Converged).To(BeTrue())

			snapshot := dynamo.Clone(bodies)
			ps := resolver.Pass(bodies, dynamo.Vec2{X: 10, Y: 10})

			Expect(ps.Changed()).To(BeFalse())
			Expect(bodies).To(Equal(snapshot))
		})

		It("finishes an empty store in one pass", func() {
			st := resolver.Resolve(nil, bounds)
			Expect(st).To(Equal(collision.Stats{Passes: 1, Converged: true}))
		})

		It("stops at the pass cap and warns", func() {
			var buf bytes.Buffer
			logger, err := logging.New(&buf, "warn")
			Expect(err).NotTo(HaveOccurred())
			resolver = collision.NewResolver(collision.PolicyIndependent, 1, logger)
			bodies := []dynamo.Body{body(0, 9.9, 0, 1, 0.5, 1)}

			st := resolver.Resolve(bodies, dynamo.Vec2{X: 10, Y: 10})

			Expect(st.Converged).To(BeFalse())
			Expect(st.Passes).To(Equal(1))
			Expect(bodies[0].Velocity.Y).To(Equal(-1.0))
			Expect(buf.String()).To(ContainSubstring("collision passes exhausted"))
		})
	})

	Describe("PassLimit", func() {
		It("scales with the body count unless capped explicitly", func() {
			Expect(resolver.PassLimit(0)).To(Equal(collision.DefaultMinPasses))
			Expect(resolver.PassLimit(60)).To(Equal(240))
			resolver.MaxPasses = 5
			Expect(resolver.PassLimit(60)).To(Equal(5))
		})
	})
})
