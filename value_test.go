package lispi

import (
	"testing"
)

func TestTruthy(t *testing.T) {
	for _, tc := range []struct {
		val  Value
		want bool
	}{
		{NilVal(), false},
		{BoolVal(false), false},
		{BoolVal(true), true},
		{IntVal(0), true},
		{IntVal(-1), true},
		{StringVal(""), true},
		{ListVal(nil), true},
	} {
		if tc.val.Truthy() != tc.want {
			t.Fatalf("Truthy(%s): expected %v", tc.val.String(), tc.want)
		}
	}
}

func TestValuesEqual(t *testing.T) {
	a := ListVal([]Value{IntVal(1), StringVal("x"), ListVal([]Value{NilVal()})})
	b := ListVal([]Value{IntVal(1), StringVal("x"), ListVal([]Value{NilVal()})})
	if !ValuesEqual(a, b) {
		t.Fatal("structurally equal lists should compare equal")
	}
	if ValuesEqual(a, ListVal([]Value{IntVal(1)})) {
		t.Fatal("lists of different lengths should not compare equal")
	}
	if ValuesEqual(IntVal(1), StringVal("1")) {
		t.Fatal("different kinds should not compare equal")
	}
	if ValuesEqual(SymbolVal("x"), StringVal("x")) {
		t.Fatal("Symbol and String wrap text but are distinct kinds")
	}
}

func TestFunctionEqualityByName(t *testing.T) {
	noop := func(env *Env, args []Value) (Value, error) { return NilVal(), nil }
	a := FnVal(&Function{Name: "same", Call: noop})
	b := FnVal(&Function{Name: "same", Call: noop})
	c := FnVal(&Function{Name: "other", Call: noop})
	if !ValuesEqual(a, b) {
		t.Fatal("functions with the same name should compare equal")
	}
	if ValuesEqual(a, c) {
		t.Fatal("functions with different names should not compare equal")
	}
}

func TestValueString(t *testing.T) {
	for _, tc := range []struct {
		val  Value
		want string
	}{
		{NilVal(), "nil"},
		{BoolVal(true), "true"},
		{IntVal(-42), "-42"},
		{StringVal("hi"), "hi"},
		{SymbolVal("foo"), "foo"},
		{ListVal([]Value{IntVal(1), StringVal("a"), ListVal(nil)}), `(1 "a" ())`},
	} {
		if got := tc.val.String(); got != tc.want {
			t.Fatalf("String(): expected %q, got %q", tc.want, got)
		}
	}
}

func TestClosureNamesAreUnique(t *testing.T) {
	env := NewEnv()
	a := evalStr(t, env, "(fn (x) x)")
	b := evalStr(t, env, "(fn (x) x)")
	if a.Fn.Name == b.Fn.Name {
		t.Fatal("each closure should get a distinct debug name")
	}
}
