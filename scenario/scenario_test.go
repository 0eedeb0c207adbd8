package scenario

import (
	"testing"

	"github.com/fluentgo/fluentgo/arb"
)

func intArb(lo, hi int) arb.Arbitrary[any] {
	return arb.Map(arb.IntRange(lo, hi), func(n int) any { return n })
}

func TestEmptyIsNotRunnable(t *testing.T) {
	if Empty().Runnable() {
		t.Fatal("expected an empty scenario to be non-runnable")
	}
}

func TestRunnableRequiresTerminalAssert(t *testing.T) {
	sc := Empty().ForAll("x", intArb(0, 10))
	if sc.Runnable() {
		t.Fatal("expected a scenario without an assert to be non-runnable")
	}

	sc = sc.Assert(func(bindings map[string]any) bool { return true })
	if !sc.Runnable() {
		t.Fatal("expected a scenario ending in Assert to be runnable")
	}
}

func TestAppendDoesNotMutateReceiver(t *testing.T) {
	base := Empty().ForAll("a", intArb(0, 10))
	extended := base.GivenConstant("b", 5)

	if len(base.Nodes) != 1 {
		t.Fatalf("expected the original scenario to keep 1 node, got %d", len(base.Nodes))
	}
	if len(extended.Nodes) != 2 {
		t.Fatalf("expected the extended scenario to have 2 nodes, got %d", len(extended.Nodes))
	}
}

func TestForAllAndExistsRecordQuantifierKind(t *testing.T) {
	sc := Empty().ForAll("a", intArb(0, 10)).Exists("b", intArb(0, 10))
	qs := sc.Quantifiers()
	if len(qs) != 2 {
		t.Fatalf("expected 2 quantifier nodes, got %d", len(qs))
	}
	if qs[0].QuantifierKind != ForAll {
		t.Fatalf("expected the first quantifier to be ForAll, got %v", qs[0].QuantifierKind)
	}
	if qs[1].QuantifierKind != Exists {
		t.Fatalf("expected the second quantifier to be Exists, got %v", qs[1].QuantifierKind)
	}
}

func TestQuantifiersSkipsNonQuantifierNodes(t *testing.T) {
	sc := Empty().
		ForAll("a", intArb(0, 10)).
		GivenConstant("c", 1).
		GivenMutable("m", func() any { return 2 }).
		When(func(bindings map[string]any) {}).
		Exists("b", intArb(0, 10)).
		Assert(func(bindings map[string]any) bool { return true })

	qs := sc.Quantifiers()
	if len(qs) != 2 {
		t.Fatalf("expected quantifiers to skip given/when/assert nodes, got %d entries", len(qs))
	}
	if qs[0].Name != "a" || qs[1].Name != "b" {
		t.Fatalf("expected quantifiers in order [a b], got [%s %s]", qs[0].Name, qs[1].Name)
	}
}

func TestGivenConstantRecordsValue(t *testing.T) {
	sc := Empty().GivenConstant("k", 42)
	if sc.Nodes[0].Kind != KindGivenConstant {
		t.Fatalf("expected KindGivenConstant, got %v", sc.Nodes[0].Kind)
	}
	if sc.Nodes[0].ConstValue != 42 {
		t.Fatalf("expected ConstValue 42, got %v", sc.Nodes[0].ConstValue)
	}
}

func TestGivenMutableRecordsFactory(t *testing.T) {
	sc := Empty().GivenMutable("k", func() any { return "fresh" })
	if sc.Nodes[0].Kind != KindGivenMutable {
		t.Fatalf("expected KindGivenMutable, got %v", sc.Nodes[0].Kind)
	}
	if sc.Nodes[0].Factory() != "fresh" {
		t.Fatalf("expected the factory to produce \"fresh\", got %v", sc.Nodes[0].Factory())
	}
}

func TestConfigureAppendsOpaqueOverrides(t *testing.T) {
	sc := Empty().Configure(map[string]any{"sampleSize": 500})
	if sc.Nodes[0].Kind != KindConfig {
		t.Fatalf("expected KindConfig, got %v", sc.Nodes[0].Kind)
	}
	if sc.Nodes[0].ConfigOverrides["sampleSize"] != 500 {
		t.Fatalf("expected overrides to carry sampleSize=500, got %#v", sc.Nodes[0].ConfigOverrides)
	}
}
