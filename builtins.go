package lispi

import "os"

// NewEnv returns the root environment with the builtin library installed.
// The global table it creates lives for the whole run.
func NewEnv() *Env {
	env := &Env{globals: &Globals{bindings: make(map[string]Value)}}

	env.Define("nil", NilVal())
	env.Define("true", BoolVal(true))
	env.Define("false", BoolVal(false))

	bind := func(name string, fn NativeFn) {
		env.Define(name, FnVal(&Function{Name: name, Call: fn}))
	}

	// Special forms
	bind("def", builtinDef)
	bind("if", builtinIf)
	bind("fn", builtinFn)
	bind("import", builtinImport)
	// Operators
	bind("+", builtinAdd)
	bind("=", builtinEq)
	// Lists
	bind("list", builtinList)
	bind("first", builtinFirst)
	bind("rest", builtinRest)
	bind("cons", builtinCons)
	bind("empty?", builtinEmpty)

	return env
}

// builtinDef: (def name expr) — name stays unevaluated and must literally be
// a symbol; expr is evaluated; the binding lands in the global table.
func builtinDef(env *Env, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, evalErrf(ErrArity, "def: expected 2 args, got %d", len(args))
	}
	if args[0].Kind != ValSymbol {
		return Value{}, evalErrf(ErrMalformedForm, "def: first arg must be a Symbol, got %s", args[0].KindName())
	}
	val, err := Eval(env, args[1])
	if err != nil {
		return Value{}, err
	}
	env.Define(args[0].Str, val)
	return NilVal(), nil
}

// builtinIf: (if cond then else?) — only the taken branch is evaluated.
func builtinIf(env *Env, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Value{}, evalErrf(ErrArity, "if: expected 2 or 3 args, got %d", len(args))
	}
	cond, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	if cond.Truthy() {
		return Eval(env, args[1])
	}
	if len(args) == 3 {
		return Eval(env, args[2])
	}
	return NilVal(), nil
}

// builtinFn: (fn (params...) body) — builds a closure over the current local
// bindings. The body is not evaluated here.
func builtinFn(env *Env, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, evalErrf(ErrMalformedForm, "fn: expected (fn (params...) body)")
	}
	if args[0].Kind != ValList {
		return Value{}, evalErrf(ErrMalformedForm, "fn: params must be a List, got %s", args[0].KindName())
	}
	paramNodes := *args[0].List
	params := make([]string, len(paramNodes))
	for i, node := range paramNodes {
		if node.Kind != ValSymbol {
			return Value{}, evalErrf(ErrMalformedForm, "fn: param names must be Symbols, got %s", node.KindName())
		}
		params[i] = node.Str
	}
	return makeClosure(env, params, args[1]), nil
}

// makeClosure captures the defining local scope by value and the global
// table by handle, so defs issued later remain visible inside the closure.
func makeClosure(env *Env, params []string, body Value) Value {
	snapshot := env.snapshotLocal()

	call := func(caller *Env, args []Value) (Value, error) {
		if len(args) != len(params) {
			return Value{}, evalErrf(ErrArity, "fn: expected %d args, got %d", len(params), len(args))
		}
		local := make(map[string]Value, len(snapshot)+len(params))
		for k, v := range snapshot {
			local[k] = v
		}
		// Arguments are evaluated in the caller's environment, then bound
		// positionally in the fresh frame.
		for i, param := range params {
			val, err := Eval(caller, args[i])
			if err != nil {
				return Value{}, err
			}
			local[param] = val
		}
		frame := caller.fork(local)

		// Trampoline: a body result of (recur ...) rebinds the parameters in
		// place and re-runs the body on this same Go stack frame. This is the
		// language's only iteration mechanism.
		for {
			result, err := Eval(frame, body)
			if err != nil {
				return Value{}, err
			}
			if result.Kind != ValList {
				return result, nil
			}
			elems := *result.List
			if !isRecurForm(elems) {
				return result, nil
			}
			operands := elems[1:]
			if len(operands) != len(params) {
				return Value{}, evalErrf(ErrArity, "recur: expected %d args, got %d", len(params), len(operands))
			}
			// Evaluate every operand against the current frame before any
			// rebinding, so later operands still see the old parameter values.
			vals := make([]Value, len(operands))
			for i, form := range operands {
				val, err := Eval(frame, form)
				if err != nil {
					return Value{}, err
				}
				vals[i] = val
			}
			for i, param := range params {
				local[param] = vals[i]
			}
		}
	}

	return FnVal(&Function{Name: nextFnName(), Call: call})
}

// builtinImport: (import "path") — reads and parses the file, evaluating
// each top-level form in the current environment, so imported defs land in
// the shared global table.
func builtinImport(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, evalErrf(ErrArity, "import: expected 1 arg, got %d", len(args))
	}
	pathVal, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	if pathVal.Kind != ValString {
		return Value{}, evalErrf(ErrType, "import: expected String path, got %s", pathVal.KindName())
	}
	path := pathVal.Str
	src, err := os.ReadFile(path)
	if err != nil {
		return Value{}, evalErrf(ErrImport, "import: can't read %s: %v", path, err)
	}
	parser := NewParser()
	forms, err := parser.ParseNext(string(src))
	if err != nil {
		return Value{}, evalErrf(ErrImport, "import: %s: %v", path, err)
	}
	for _, form := range forms {
		if _, err := Eval(env, form); err != nil {
			return Value{}, err
		}
	}
	if err := parser.Finish(); err != nil {
		return Value{}, evalErrf(ErrImport, "import: %s: %v", path, err)
	}
	return NilVal(), nil
}

// builtinAdd: (+ args...) — integer sum; no arguments sums to 0.
func builtinAdd(env *Env, args []Value) (Value, error) {
	var sum int64
	for _, arg := range args {
		val, err := Eval(env, arg)
		if err != nil {
			return Value{}, err
		}
		if val.Kind != ValInt {
			return Value{}, evalErrf(ErrType, "+: expected Integer, got %s", val.KindName())
		}
		sum += val.Int
	}
	return IntVal(sum), nil
}

// builtinEq: (= ref rest...) — structural equality of every argument
// against the first.
func builtinEq(env *Env, args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, evalErrf(ErrArity, "=: expected at least 1 arg, got 0")
	}
	ref, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	for _, arg := range args[1:] {
		val, err := Eval(env, arg)
		if err != nil {
			return Value{}, err
		}
		if !ValuesEqual(ref, val) {
			return BoolVal(false), nil
		}
	}
	return BoolVal(true), nil
}

func builtinList(env *Env, args []Value) (Value, error) {
	elems := make([]Value, len(args))
	for i, arg := range args {
		val, err := Eval(env, arg)
		if err != nil {
			return Value{}, err
		}
		elems[i] = val
	}
	return ListVal(elems), nil
}

func builtinFirst(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, evalErrf(ErrArity, "first: expected 1 arg, got %d", len(args))
	}
	val, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	if val.Kind != ValList {
		return Value{}, evalErrf(ErrType, "first: expected List, got %s", val.KindName())
	}
	elems := *val.List
	if len(elems) == 0 {
		return Value{}, evalErrf(ErrType, "first: expected non-empty List")
	}
	return elems[0], nil
}

func builtinRest(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, evalErrf(ErrArity, "rest: expected 1 arg, got %d", len(args))
	}
	val, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	if val.Kind != ValList {
		return Value{}, evalErrf(ErrType, "rest: expected List, got %s", val.KindName())
	}
	elems := *val.List
	if len(elems) == 0 {
		return Value{}, evalErrf(ErrType, "rest: expected non-empty List")
	}
	// Shares the backing array with the argument list.
	return ListVal(elems[1:]), nil
}

func builtinCons(env *Env, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, evalErrf(ErrArity, "cons: expected 2 args, got %d", len(args))
	}
	head, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	tail, err := Eval(env, args[1])
	if err != nil {
		return Value{}, err
	}
	if tail.Kind != ValList {
		return Value{}, evalErrf(ErrType, "cons: second arg must be a List, got %s", tail.KindName())
	}
	elems := *tail.List
	result := make([]Value, len(elems)+1)
	result[0] = head
	copy(result[1:], elems)
	return ListVal(result), nil
}

func builtinEmpty(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, evalErrf(ErrArity, "empty?: expected 1 arg, got %d", len(args))
	}
	val, err := Eval(env, args[0])
	if err != nil {
		return Value{}, err
	}
	if val.Kind != ValList {
		return Value{}, evalErrf(ErrType, "empty?: expected List, got %s", val.KindName())
	}
	return BoolVal(len(*val.List) == 0), nil
}
