package diffcalc

// evalAt evaluates e with slot temporarily set to v, restoring the slot's
// prior value on every return path (§4.7, §5).
func evalAt(e *Expression, slot int, v float64) (float64, error) {
	var result float64
	err := e.Vars.withValue(slot, v, func() error {
		r, err := Evaluate(e)
		result = r
		return err
	})
	return result, err
}

// factorial returns n!; a negative n returns -1 as a sentinel (never an
// error) and 0 returns 1, matching §4.7's factorial helper contract.
func factorial(n int) float64 {
	if n < 0 {
		return -1
	}
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

// Tangent computes the tangent line to expr at var = v0: a fresh expression
// f(v0) - f'(v0)*v0 + f'(v0)*var (§4.7).
func Tangent(expr *Expression, varName string, v0 float64) (*Expression, error) {
	if expr == nil || expr.Root == nil {
		return nil, newErr(ErrNoExpression, nil)
	}
	slot, err := expr.Variable(varName)
	if err != nil {
		return nil, err
	}
	deriv, err := DifferentiateExpression(expr, varName)
	if err != nil {
		return nil, err
	}

	fv0, err := evalAt(expr, slot, v0)
	if err != nil {
		return nil, err
	}
	dv0, err := evalAt(deriv, slot, v0)
	if err != nil {
		return nil, err
	}

	root := _ADD(_SUB(_NUM(fv0), _MUL(_NUM(dv0), _NUM(v0))), _MUL(_NUM(dv0), _VAR(slot)))
	linkParents(root)
	out := &Expression{Root: root, Vars: expr.Vars.copy()}
	if _, err := Simplify(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Taylor builds the order-n Taylor polynomial of expr about var = v0:
// Σ_{i=0..order} f⁽ⁱ⁾(v0)/i! · (var − v0)^i (§4.7). Each iteration adds one
// term from the current derivative evaluated at v0, then differentiates
// once more; the variable's value is temporarily overwritten as in Tangent
// and always restored.
func Taylor(expr *Expression, varName string, v0 float64, order int) (*Expression, error) {
	if expr == nil || expr.Root == nil {
		return nil, newErr(ErrNoExpression, nil)
	}
	if order < 0 {
		return nil, newErr(ErrInvalidExpressionFormat, "negative Taylor order")
	}
	slot, err := expr.Variable(varName)
	if err != nil {
		return nil, err
	}

	cur := expr.Copy()
	if _, err := Simplify(cur); err != nil {
		return nil, err
	}

	var sum *Node
	for i := 0; i <= order; i++ {
		fi, err := evalAt(cur, slot, v0)
		if err != nil {
			return nil, err
		}
		coeff := fi / factorial(i)
		power := _DEG(_SUB(_VAR(slot), _NUM(v0)), _NUM(float64(i)))
		term := _MUL(_NUM(coeff), power)
		if sum == nil {
			sum = term
		} else {
			sum = _ADD(sum, term)
		}

		if i < order {
			next, err := DifferentiateExpression(cur, varName)
			if err != nil {
				return nil, err
			}
			cur = next
		}
	}

	linkParents(sum)
	out := &Expression{Root: sum, Vars: expr.Vars.copy()}
	if _, err := Simplify(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Difference builds a fresh expression a - b, with a's variable table
// copied (§4.7). Both inputs are left unmodified.
func Difference(a, b *Expression) (*Expression, error) {
	if a == nil || a.Root == nil || b == nil || b.Root == nil {
		return nil, newErr(ErrNoExpression, nil)
	}
	root := _SUB(copySubtree(a.Root), copySubtree(b.Root))
	linkParents(root)
	out := &Expression{Root: root, Vars: a.Vars.copy()}
	if _, err := Simplify(out); err != nil {
		return nil, err
	}
	return out, nil
}
