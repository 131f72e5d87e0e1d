package lispi

// Eval evaluates one form against the given environment. Atoms evaluate to
// themselves, symbols resolve local-then-global, and a non-empty list is a
// call: its head must evaluate to a function, which receives the unevaluated
// tail plus the current environment.
//
// A list whose head is the symbol recur is returned verbatim, operands
// unevaluated. Only the closure trampoline interprets that shape; anywhere
// else it is an inert list value, not an error.
func Eval(env *Env, v Value) (Value, error) {
	switch v.Kind {
	case ValSymbol:
		val, ok := env.Resolve(v.Str)
		if !ok {
			return Value{}, evalErrf(ErrUnresolvedSymbol, "can't resolve symbol '%s'", v.Str)
		}
		return val, nil
	case ValList:
		elems := *v.List
		if len(elems) == 0 {
			return Value{}, evalErrf(ErrEmptyCall, "can't evaluate empty list")
		}
		if isRecurForm(elems) {
			return v, nil
		}
		head, err := Eval(env, elems[0])
		if err != nil {
			return Value{}, err
		}
		if head.Kind != ValFn {
			return Value{}, evalErrf(ErrNotCallable, "value %s is not a function", head.String())
		}
		return head.Fn.Call(env, elems[1:])
	default:
		return v, nil
	}
}

func isRecurForm(elems []Value) bool {
	return len(elems) > 0 && elems[0].Kind == ValSymbol && elems[0].Str == "recur"
}
