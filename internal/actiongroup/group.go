package actiongroup

import (
	"fmt"
	"sort"
)

// Argument declares one action group argument. A nil Default makes the
// argument required.
type Argument struct {
	Name    string
	Default *string
}

// Required declares an argument without a default.
func Required(name string) Argument {
	return Argument{Name: name}
}

// WithDefault declares an argument with a default value.
func WithDefault(name, value string) Argument {
	return Argument{Name: name, Default: &value}
}

// ActionGroupObject is a reusable ordered sequence of steps with an argument
// schema. It is never modified by resolution.
type ActionGroupObject struct {
	name      string
	arguments []Argument
	steps     []*ActionObject
	resolver  *Resolver
}

// Option configures an ActionGroupObject.
type Option func(*ActionGroupObject)

// WithResolver sets the resolver used by ResolveSteps.
func WithResolver(r *Resolver) Option {
	return func(g *ActionGroupObject) {
		g.resolver = r
	}
}

// NewActionGroupObject creates a group. Step keys and argument names must be
// unique within the group.
func NewActionGroupObject(name string, arguments []Argument, steps []*ActionObject, opts ...Option) (*ActionGroupObject, error) {
	seenArgs := make(map[string]bool, len(arguments))
	for _, a := range arguments {
		if a.Name == "" {
			return nil, fmt.Errorf("action group %q declares an argument without a name", name)
		}
		if seenArgs[a.Name] {
			return nil, fmt.Errorf("action group %q declares argument %q more than once", name, a.Name)
		}
		seenArgs[a.Name] = true
	}

	seenKeys := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.StepKey() == "" {
			return nil, fmt.Errorf("action group %q has a step without a step key", name)
		}
		if seenKeys[s.StepKey()] {
			return nil, fmt.Errorf("%w: %q in action group %q", ErrDuplicateStepKey, s.StepKey(), name)
		}
		seenKeys[s.StepKey()] = true
	}

	g := &ActionGroupObject{
		name:      name,
		arguments: append([]Argument(nil), arguments...),
		steps:     append([]*ActionObject(nil), steps...),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *ActionGroupObject) Name() string { return g.name }

// Arguments returns the declared argument schema in order.
func (g *ActionGroupObject) Arguments() []Argument {
	return append([]Argument(nil), g.arguments...)
}

// Steps returns the raw, unresolved steps in order.
func (g *ActionGroupObject) Steps() []*ActionObject {
	return append([]*ActionObject(nil), g.steps...)
}

// HasArgument reports whether name is declared in the argument schema.
func (g *ActionGroupObject) HasArgument(name string) bool {
	for _, a := range g.arguments {
		if a.Name == name {
			return true
		}
	}
	return false
}

// ResolveSteps resolves every step against callerArgs and prefixes each step
// key with mergeKeyPrefix. A nil callerArgs means no arguments were given.
func (g *ActionGroupObject) ResolveSteps(callerArgs map[string]string, mergeKeyPrefix string) (*StepList, error) {
	r := g.resolver
	if r == nil {
		r = NewResolver(nil, nil)
	}
	return r.ResolveSteps(g, callerArgs, mergeKeyPrefix)
}

// bindArguments merges caller values and defaults over the schema.
func (g *ActionGroupObject) bindArguments(callerArgs map[string]string) (map[string]string, error) {
	bound := make(map[string]string, len(g.arguments))
	var missing []string
	for _, a := range g.arguments {
		if v, ok := callerArgs[a.Name]; ok {
			bound[a.Name] = v
			continue
		}
		if a.Default != nil {
			bound[a.Name] = *a.Default
			continue
		}
		missing = append(missing, a.Name)
	}

	if callerArgs == nil && len(missing) > 0 {
		return nil, &ArgumentError{Group: g.name, Kind: ErrNotEnoughArguments, Missing: missing}
	}

	var unexpected []string
	for name := range callerArgs {
		if !g.HasArgument(name) {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)

	if len(missing) > 0 {
		return nil, &ArgumentError{Group: g.name, Kind: ErrArgumentMismatch, Missing: missing, Unexpected: unexpected}
	}
	if len(unexpected) > 0 {
		return nil, &ArgumentError{Group: g.name, Kind: ErrUnexpectedArguments, Unexpected: unexpected}
	}
	return bound, nil
}
