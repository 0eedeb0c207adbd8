// Package scenario defines the quantifier/given/when/assert AST that a
// fluent builder constructs and the Explorer walks, per spec.md §3.3.
// Nodes are stored as a flat, index-addressed slice rather than a
// parent-pointer tree: a scenario is built by appending, and the Explorer
// walks the slice in order, which keeps both construction and traversal
// free of pointer-chasing.
package scenario

import "github.com/fluentgo/fluentgo/arb"

// NodeKind tags which variant a Node holds.
type NodeKind int

const (
	KindQuantifier NodeKind = iota
	KindGivenConstant
	KindGivenMutable
	KindWhen
	KindAssert
	KindConfig
)

// QuantifierKind distinguishes universal from existential binding.
type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	Exists
)

// Node is one step in a scenario's root-to-leaf chain.
type Node struct {
	Kind NodeKind

	// Quantifier fields.
	Name           string
	QuantifierKind QuantifierKind
	Arbitrary      arb.Arbitrary[any]

	// GivenConstant fields.
	ConstValue any

	// GivenMutable fields.
	Factory func() any

	// When fields.
	WhenFn func(bindings map[string]any)

	// Assert fields.
	Predicate func(bindings map[string]any) bool

	// Config fields: strategy/statistics overrides, opaque to the AST.
	ConfigOverrides map[string]any
}

// Scenario is the ordered list of nodes from root to (eventually) an
// AssertNode leaf. Every runnable scenario's last node must be a
// KindAssert node.
type Scenario struct {
	Nodes []Node
}

// Empty returns a scenario with no nodes, ready for the builder to append
// to.
func Empty() Scenario { return Scenario{} }

// Runnable reports whether the scenario ends in an assertion, per spec.md
// §3.3's "every leaf must be an AssertNode" rule.
func (s Scenario) Runnable() bool {
	return len(s.Nodes) > 0 && s.Nodes[len(s.Nodes)-1].Kind == KindAssert
}

// append returns a new Scenario with node appended; the receiver is left
// unmodified (scenario nodes are immutable per spec.md §3.5).
func (s Scenario) append(n Node) Scenario {
	out := make([]Node, len(s.Nodes)+1)
	copy(out, s.Nodes)
	out[len(s.Nodes)] = n
	return Scenario{Nodes: out}
}

// ForAll appends a universally quantified variable named name, drawn from
// a.
func (s Scenario) ForAll(name string, a arb.Arbitrary[any]) Scenario {
	return s.append(Node{Kind: KindQuantifier, Name: name, QuantifierKind: ForAll, Arbitrary: a})
}

// Exists appends an existentially quantified variable named name.
func (s Scenario) Exists(name string, a arb.Arbitrary[any]) Scenario {
	return s.append(Node{Kind: KindQuantifier, Name: name, QuantifierKind: Exists, Arbitrary: a})
}

// GivenConstant binds name to a fixed value in every test case.
func (s Scenario) GivenConstant(name string, value any) Scenario {
	return s.append(Node{Kind: KindGivenConstant, Name: name, ConstValue: value})
}

// GivenMutable binds name to a fresh value produced by factory for every
// test case.
func (s Scenario) GivenMutable(name string, factory func() any) Scenario {
	return s.append(Node{Kind: KindGivenMutable, Name: name, Factory: factory})
}

// When appends a side-effecting step over the current binding record.
func (s Scenario) When(fn func(bindings map[string]any)) Scenario {
	return s.append(Node{Kind: KindWhen, WhenFn: fn})
}

// Assert appends the terminal predicate; a scenario may have at most one,
// as its final node.
func (s Scenario) Assert(pred func(bindings map[string]any) bool) Scenario {
	return s.append(Node{Kind: KindAssert, Predicate: pred})
}

// Configure appends strategy/statistics overrides, opaque to the AST
// itself. The Explorer does not read config nodes.
func (s Scenario) Configure(overrides map[string]any) Scenario {
	return s.append(Node{Kind: KindConfig, ConfigOverrides: overrides})
}

// Quantifiers returns the ordered sub-slice of quantifier nodes, the shape
// the Explorer's nested-loop walk and the Shrinker's per-quantifier
// minimization both need.
func (s Scenario) Quantifiers() []Node {
	out := make([]Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Kind == KindQuantifier {
			out = append(out, n)
		}
	}
	return out
}
