package constraint

// ContactSolver owns the contact constraints built for the current step
// and runs Gauss-Seidel sequential-impulse iterations over them.
type ContactSolver struct {
	Params      SolverParams
	constraints []*ContactConstraint
}

// NewContactSolver builds a solver with the given tunables.
func NewContactSolver(params SolverParams) *ContactSolver {
	return &ContactSolver{Params: params}
}

// Add registers a contact constraint, preparing it immediately (computing
// lever arms, effective mass, bias, and applying its warm start).
func (s *ContactSolver) Add(c *ContactConstraint, dt float64) {
	c.Prepare(dt, s.Params)
	s.constraints = append(s.constraints, c)
}

// Constraints returns the constraints added this step, for the friction
// solver to couple against.
func (s *ContactSolver) Constraints() []*ContactConstraint {
	return s.constraints
}

// Solve runs the given number of Gauss-Seidel iterations over every
// constraint.
func (s *ContactSolver) Solve(iterations int) {
	for i := 0; i < iterations; i++ {
		for _, c := range s.constraints {
			c.Solve()
		}
	}
}

// Clear drops all constraints, ready for the next step.
func (s *ContactSolver) Clear() {
	s.constraints = s.constraints[:0]
}

// FrictionSolver owns the friction constraints coupled to this step's
// contacts.
type FrictionSolver struct {
	constraints []*FrictionConstraint
}

// NewFrictionSolver builds an empty friction solver.
func NewFrictionSolver() *FrictionSolver {
	return &FrictionSolver{}
}

// Add prepares a friction constraint (computing its effective mass) and
// registers it.
func (s *FrictionSolver) Add(f *FrictionConstraint) {
	f.Prepare()
	s.constraints = append(s.constraints, f)
}

// Solve runs the given number of iterations over every friction
// constraint.
func (s *FrictionSolver) Solve(iterations int) {
	for i := 0; i < iterations; i++ {
		for _, f := range s.constraints {
			f.Solve()
		}
	}
}

// Clear drops all constraints, ready for the next step.
func (s *FrictionSolver) Clear() {
	s.constraints = s.constraints[:0]
}
