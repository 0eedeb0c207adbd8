package stateful

import "github.com/fluentgo/fluentgo/arb"

// Builder assembles a StateMachine fluently: Stateful[Model, Sut]() starts
// a chain of .Model/.Sut/.Command/.Invariant calls ending in .Check, per
// spec.md §6.6.
type Builder[M, S any] struct {
	modelFactory func() M
	sutFactory   func() S
	commands     []Command[M, S]
	invariants   []func(model M, sut S) bool
}

// Stateful starts a new stateful check builder for model type M and SUT
// type S.
func Stateful[M, S any]() *Builder[M, S] { return &Builder[M, S]{} }

// Model registers the per-run model factory.
func (b *Builder[M, S]) Model(factory func() M) *Builder[M, S] {
	b.modelFactory = factory
	return b
}

// Sut registers the per-run SUT factory.
func (b *Builder[M, S]) Sut(factory func() S) *Builder[M, S] {
	b.sutFactory = factory
	return b
}

// Command starts building a new command named name.
func (b *Builder[M, S]) Command(name string) *CommandBuilder[M, S] {
	return &CommandBuilder[M, S]{
		Builder: b,
		cmd:     Command[M, S]{Name: name, Arbitraries: make(map[string]arb.Arbitrary[any])},
		idx:     -1,
	}
}

// Invariant registers a global invariant, checked after every step.
func (b *Builder[M, S]) Invariant(f func(model M, sut S) bool) *Builder[M, S] {
	b.invariants = append(b.invariants, f)
	return b
}

// Check assembles the accumulated commands/invariants into a StateMachine
// and runs it against cfg.
func (b *Builder[M, S]) Check(cfg Config) Result[M, S] {
	sm := StateMachine[M, S]{
		ModelFactory: b.modelFactory,
		SutFactory:   b.sutFactory,
		Commands:     b.commands,
		Invariants:   b.invariants,
	}
	return Check(sm, cfg)
}

// CommandBuilder builds one Command within a Builder chain. It embeds
// *Builder so, once Run appends the command, the chain can continue
// directly into .Command/.Invariant/.Check without an explicit "end
// command" call.
type CommandBuilder[M, S any] struct {
	*Builder[M, S]
	cmd Command[M, S]
	idx int
}

// ForAll declares one of this command's arguments, drawn from a.
func (c *CommandBuilder[M, S]) ForAll(name string, a arb.Arbitrary[any]) *CommandBuilder[M, S] {
	c.cmd.Arbitraries[name] = a
	return c
}

// Pre sets this command's precondition over the model.
func (c *CommandBuilder[M, S]) Pre(f func(model M) bool) *CommandBuilder[M, S] {
	c.cmd.Precondition = f
	return c
}

// Run sets this command's execute step and appends it to the parent
// builder; Post may optionally follow to attach a postcondition.
func (c *CommandBuilder[M, S]) Run(f func(args map[string]any, model *M, sut S) (any, error)) *CommandBuilder[M, S] {
	c.cmd.Execute = f
	c.Builder.commands = append(c.Builder.commands, c.cmd)
	c.idx = len(c.Builder.commands) - 1
	return c
}

// Post attaches a postcondition to the command most recently finalized by
// Run.
func (c *CommandBuilder[M, S]) Post(f func(args map[string]any, model M, sut S, result any) bool) *CommandBuilder[M, S] {
	if c.idx >= 0 {
		c.Builder.commands[c.idx].Postcondition = f
	}
	return c
}
