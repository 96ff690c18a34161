// Package gravity implements the gravity experiment's simulation core.
//
// A [State] holds an ordered set of point masses ([Body]). Each call to
// [State.Step] optionally replaces the whole set and then advances it by one
// semi-implicit Euler step under pairwise attraction:
//
//   - force between i and j is K*m_i*m_j*r/d^3 with K = [GravityConstant]
//   - pairs closer than or at [MinDistance] do not interact
//   - bodies with mass <= 0 neither exert nor receive force and never move
//
// All forces of a step are computed from the pre-step configuration.
//
// # Example
//
//	st := gravity.NewState()
//	specs, _ := gravity.DecodeSpecs(raw)
//	positions, err := st.Step(specs, 0.1) // seed and advance
//	positions, err = st.Step(nil, 0.1)    // advance retained bodies
//
// # Thread Safety
//
// State serializes its own operations, so concurrent Step calls on one State
// are applied one after another. There is no package-level state; callers
// that need isolation between clients give each client its own State.
package gravity
