package lispi

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

type ValueKind int

const (
	ValNil ValueKind = iota
	ValBool
	ValInt
	ValString
	ValSymbol
	ValList
	ValFn
)

// NativeFn is the single callable capability. Arguments arrive as unevaluated
// forms together with the caller's environment; whether and when each
// argument gets evaluated is the function's own choice. Builtins that want
// eager arguments evaluate them themselves.
type NativeFn func(env *Env, args []Value) (Value, error)

// Function pairs a callable with a name. The name is a debug label and the
// basis for function equality, nothing more.
type Function struct {
	Name string
	Call NativeFn
}

// Value is the tagged union flowing through the whole interpreter. The same
// representation serves as syntax (an unevaluated form) and as runtime data.
type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
	Str  string
	List *[]Value
	Fn   *Function
}

func NilVal() Value            { return Value{Kind: ValNil} }
func BoolVal(b bool) Value     { return Value{Kind: ValBool, Bool: b} }
func IntVal(n int64) Value     { return Value{Kind: ValInt, Int: n} }
func StringVal(s string) Value { return Value{Kind: ValString, Str: s} }
func SymbolVal(s string) Value { return Value{Kind: ValSymbol, Str: s} }
func FnVal(fn *Function) Value { return Value{Kind: ValFn, Fn: fn} }

func ListVal(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: ValList, List: &elems}
}

var fnCounter atomic.Int64

// nextFnName labels a closure for debugging and equality checks.
func nextFnName() string {
	return fmt.Sprintf("fn:%d", fnCounter.Add(1))
}

// Truthy reports whether a value counts as true in a condition. Only false
// and nil are falsy; 0, "" and the empty list are all truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case ValNil:
		return false
	case ValBool:
		return v.Bool
	default:
		return true
	}
}

func (v Value) KindName() string {
	switch v.Kind {
	case ValNil:
		return "Nil"
	case ValBool:
		return "Bool"
	case ValInt:
		return "Integer"
	case ValString:
		return "String"
	case ValSymbol:
		return "Symbol"
	case ValList:
		return "List"
	case ValFn:
		return "Fn"
	default:
		return "Unknown"
	}
}

// String renders a value in surface syntax. Strings keep their quotes inside
// lists but print raw at the top level.
func (v Value) String() string {
	switch v.Kind {
	case ValNil:
		return "nil"
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValInt:
		return strconv.FormatInt(v.Int, 10)
	case ValString:
		return v.Str
	case ValSymbol:
		return v.Str
	case ValFn:
		return fmt.Sprintf("<fn %s>", v.Fn.Name)
	case ValList:
		elems := *v.List
		parts := make([]string, len(elems))
		for i, e := range elems {
			if e.Kind == ValString {
				parts[i] = fmt.Sprintf("%q", e.Str)
			} else {
				parts[i] = e.String()
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("<unknown:%d>", v.Kind)
	}
}

// ValuesEqual compares two values structurally. Functions compare by name.
func ValuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNil:
		return true
	case ValBool:
		return a.Bool == b.Bool
	case ValInt:
		return a.Int == b.Int
	case ValString, ValSymbol:
		return a.Str == b.Str
	case ValFn:
		return a.Fn.Name == b.Fn.Name
	case ValList:
		as, bs := *a.List, *b.List
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !ValuesEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return false
}
