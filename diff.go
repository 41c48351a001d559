package diffcalc

// Differentiate produces a fresh subtree computing d(node)/d(var target),
// without modifying node (§4.6). Numbers and off-target variables become 0;
// the target variable becomes 1; operators dispatch to the operator
// table's derivative rule, which combines copies of the original children
// with recursive calls back into Differentiate.
func Differentiate(node *Node, target int) (*Node, error) {
	if node == nil {
		return nil, newErr(ErrInvalidExpressionFormat, "nil node")
	}
	switch node.Kind {
	case KindNumber:
		return _NUM(0), nil
	case KindVariable:
		if node.VarSlot == target {
			return _NUM(1), nil
		}
		return _NUM(0), nil
	case KindOperator:
		info, ok := operatorTable[node.Operator]
		if !ok {
			return nil, newErr(ErrUnknownOperation, node.Operator)
		}
		d := func(n *Node) (*Node, error) { return Differentiate(n, target) }
		return info.Derivative(node, target, d)
	default:
		return nil, newErr(ErrInvalidExpressionFormat, "unknown node kind")
	}
}

// DifferentiateExpression resolves varName to a slot (failing with
// NO_DIFF_VARIABLE if it is not one of expr's variables), builds its
// derivative in a fresh expression with a cloned variable table, links
// parents, simplifies, and returns the result (§4.6). expr is unmodified.
func DifferentiateExpression(expr *Expression, varName string) (*Expression, error) {
	if expr == nil || expr.Root == nil {
		return nil, newErr(ErrNoExpression, nil)
	}
	slot, err := expr.Variable(varName)
	if err != nil {
		return nil, err
	}
	root, err := Differentiate(expr.Root, slot)
	if err != nil {
		return nil, err
	}
	linkParents(root)
	out := &Expression{Root: root, Vars: expr.Vars.copy()}
	if _, err := Simplify(out); err != nil {
		return nil, err
	}
	return out, nil
}

// DifferentiateExpressionN differentiates expr n times with respect to
// varName, simplifying after every step, matching the teacher's DiffN
// convenience (sympy.go) that the Taylor transform's loop also needs.
// n == 0 returns a simplified copy of expr unchanged.
func DifferentiateExpressionN(expr *Expression, varName string, n int) (*Expression, error) {
	if n < 0 {
		return nil, newErr(ErrInvalidExpressionFormat, "negative differentiation order")
	}
	cur := expr.Copy()
	if _, err := Simplify(cur); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		next, err := DifferentiateExpression(cur, varName)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
