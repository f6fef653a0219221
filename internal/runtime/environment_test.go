package runtime

import (
	"reflect"
	"testing"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NumberValue{Val: 1})

	got, err := env.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (NumberValue{Val: 1}) {
		t.Errorf("got %#v", got)
	}
}

func TestRedeclareOverwrites(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NumberValue{Val: 1})
	env.Define("a", StringValue{Val: "x"})

	got, _ := env.Get("a")
	if got != (StringValue{Val: "x"}) {
		t.Errorf("got %#v", got)
	}
}

func TestShadowingLeavesOuterUntouched(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})

	inner := global.Extend()
	inner.Define("a", NumberValue{Val: 2})

	if got, _ := inner.Get("a"); got != (NumberValue{Val: 2}) {
		t.Errorf("inner a = %#v", got)
	}
	if got, _ := global.Get("a"); got != (NumberValue{Val: 1}) {
		t.Errorf("outer a = %#v", got)
	}
}

func TestAssignWritesNearestDefiningScope(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})

	inner := global.Extend()
	if err := inner.Assign("a", NumberValue{Val: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := global.Get("a"); got != (NumberValue{Val: 3}) {
		t.Errorf("outer a = %#v", got)
	}
	if len(inner.Keys()) != 0 {
		t.Errorf("assign created a binding in the inner scope: %v", inner.Keys())
	}
}

func TestUndefinedVariable(t *testing.T) {
	env := NewEnvironment(nil).Extend()

	if _, err := env.Get("missing"); err == nil || err.Error() != "undefined variable 'missing'" {
		t.Errorf("unexpected get error: %v", err)
	}
	if err := env.Assign("missing", Nil); err == nil || err.Error() != "undefined variable 'missing'" {
		t.Errorf("unexpected assign error: %v", err)
	}
}

func TestKeys(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("b", Nil)
	global.Define("a", Nil)

	if !reflect.DeepEqual(global.Keys(), []string{"a", "b"}) {
		t.Errorf("unexpected keys: %v", global.Keys())
	}

	child := global.Extend()
	child.Define("c", Nil)
	if !reflect.DeepEqual(child.Keys(), []string{"c"}) {
		t.Errorf("child keys include its parent's: %v", child.Keys())
	}
	if _, err := child.Get("a"); err != nil {
		t.Errorf("child cannot see its parent: %v", err)
	}
}
