package dataloader_test

import (
	"testing"

	dataloader "github.com/ubugeeei/bgql-sub002"
)

type testClonerStruct struct {
	Value int
}

func (s *testClonerStruct) Clone() *testClonerStruct {
	return &testClonerStruct{
		Value: s.Value,
	}
}

type testDeepCopierStruct struct {
	Value int
}

func (s *testDeepCopierStruct) DeepCopy() *testDeepCopierStruct {
	return &testDeepCopierStruct{
		Value: s.Value,
	}
}

func TestDefaultValueClonerWithCloneMethod(t *testing.T) {
	t.Parallel()

	cloner := dataloader.DefaultValueCloner[*testClonerStruct]()
	original := &testClonerStruct{Value: 42}
	cloned := cloner.CloneValue(original)

	if original == cloned {
		t.Error("expected a different pointer, got the same pointer")
	}
	if original.Value != cloned.Value {
		t.Errorf("expected same value, got original=%d, cloned=%d", original.Value, cloned.Value)
	}

	original.Value = 100
	if cloned.Value != 42 {
		t.Errorf("expected cloned value to remain unchanged, got %d", cloned.Value)
	}
}

func TestDefaultValueClonerWithDeepCopyMethod(t *testing.T) {
	t.Parallel()

	cloner := dataloader.DefaultValueCloner[*testDeepCopierStruct]()
	original := &testDeepCopierStruct{Value: 42}
	cloned := cloner.CloneValue(original)

	if original == cloned {
		t.Error("expected a different pointer, got the same pointer")
	}

	original.Value = 100
	if cloned.Value != 42 {
		t.Errorf("expected cloned value to remain unchanged, got %d", cloned.Value)
	}
}

func TestDefaultValueClonerFallsBackToNop(t *testing.T) {
	t.Parallel()

	type simpleStruct struct {
		Value int
	}

	if _, ok := dataloader.DefaultValueCloner[string]().(dataloader.NopValueCloner[string]); !ok {
		t.Error("expected NopValueCloner for string")
	}
	if _, ok := dataloader.DefaultValueCloner[int]().(dataloader.NopValueCloner[int]); !ok {
		t.Error("expected NopValueCloner for int")
	}
	if _, ok := dataloader.DefaultValueCloner[*simpleStruct]().(dataloader.NopValueCloner[*simpleStruct]); !ok {
		t.Error("expected NopValueCloner for a type without Clone or DeepCopy")
	}

	value := &simpleStruct{Value: 1}
	if got := dataloader.DefaultValueCloner[*simpleStruct]().CloneValue(value); got != value {
		t.Error("expected the same pointer from the nop cloner")
	}
}

func TestValueClonerFunc(t *testing.T) {
	t.Parallel()

	cloner := dataloader.ValueClonerFunc[string](func(v string) string {
		return v + "_cloned"
	})
	if got := cloner.CloneValue("test"); got != "test_cloned" {
		t.Errorf("unexpected value: %q (expected: test_cloned)", got)
	}
}
