// Package physics implements the force laws of the layout.
//
// A [Field] applies, in order:
//
//   - [Attraction]: per edge, pulls endpoints together with magnitude d²/k
//   - [Repulsion]: per unordered vertex pair, pushes apart with magnitude k²/d
//   - [Gravity]: per vertex, pulls toward the origin
//
// Laws only add into the force accumulators of a [graph.Graph]; callers reset
// the accumulators before each tick. Every distance used as a divisor is
// floored at [Epsilon], so forces stay finite when vertices coincide.
//
//	field := physics.NewField(physics.DefaultGravityScale)
//	g.ResetForces()
//	field.Apply(g, physics.IdealDistance(1.3, 800, 800, g.Len()))
package physics
