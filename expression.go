package diffcalc

// Expression owns its root Node and its VarTable. Two expressions may share
// semantic content but never share nodes or variable slots: copy operations
// deep-clone both (§3).
type Expression struct {
	Root *Node
	Vars *VarTable
}

// NewExpression allocates an empty expression with a variable table of the
// given capacity (DefaultVarCapacity if cap <= 0).
func NewExpression(cap int) *Expression {
	return &Expression{Vars: newVarTable(cap)}
}

// Copy deep-clones e's tree and variable table into a fresh, independent
// Expression.
func (e *Expression) Copy() *Expression {
	out := &Expression{Root: copySubtree(e.Root), Vars: e.Vars.copy()}
	linkParents(out.Root)
	return out
}

// Verify checks the structural invariants of §3 across the whole tree.
func (e *Expression) Verify() error {
	if e == nil || e.Root == nil {
		return newErr(ErrNoExpression, nil)
	}
	return verifyNode(e.Root)
}

// Variable resolves a name to its slot, failing with NO_DIFF_VARIABLE if
// absent. Used by DifferentiateExpression, Tangent, and Taylor, all of
// which need to name a free variable that must already exist in e.
func (e *Expression) Variable(name string) (int, error) {
	slot := e.Vars.lookup(name)
	if slot == NoVariable {
		return NoVariable, newErr(ErrNoDiffVariable, name)
	}
	return slot, nil
}
