package diffcalc

// Evaluate walks expr's tree post-order and returns its numeric value
// under the current variable assignment (§4.4). Non-finite intermediate
// results (e.g. division by zero, ln of a non-positive number) are not an
// error of this layer and simply propagate as IEEE NaN/Inf (§7); only a
// malformed tree or an operator outside the table is reported.
func Evaluate(expr *Expression) (float64, error) {
	if expr == nil || expr.Root == nil {
		return 0, newErr(ErrNoExpression, nil)
	}
	return evalNode(expr.Root, expr.Vars)
}

func evalNode(n *Node, vars *VarTable) (float64, error) {
	switch n.Kind {
	case KindNumber:
		return n.Num, nil
	case KindVariable:
		return vars.Value(n.VarSlot), nil
	case KindOperator:
		info, ok := operatorTable[n.Operator]
		if !ok {
			return 0, newErr(ErrUnknownOperation, n.Operator)
		}
		if info.Arity == 1 {
			if n.Right == nil || n.Left != nil {
				return 0, newErr(ErrInvalidExpressionFormat, "unary operator arity mismatch")
			}
			r, err := evalNode(n.Right, vars)
			if err != nil {
				return 0, err
			}
			return info.Eval(r, 0), nil
		}
		if n.Left == nil || n.Right == nil {
			return 0, newErr(ErrInvalidExpressionFormat, "binary operator arity mismatch")
		}
		l, err := evalNode(n.Left, vars)
		if err != nil {
			return 0, err
		}
		r, err := evalNode(n.Right, vars)
		if err != nil {
			return 0, err
		}
		return info.Eval(l, r), nil
	default:
		return 0, newErr(ErrInvalidExpressionFormat, "unknown node kind")
	}
}
