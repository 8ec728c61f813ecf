package actiongroup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fjglira/GoE2E-StepResolver/internal/data"
	"github.com/fjglira/GoE2E-StepResolver/internal/page"
)

// Resolver substitutes placeholders in action group steps. It only reads its
// lookups, so one Resolver may serve concurrent calls.
type Resolver struct {
	entities data.Lookup
	sections page.SectionLookup
}

// initializer is implemented by lookups that build their contents on first
// use, such as *data.Repository.
type initializer interface {
	Init() error
}

// NewResolver creates a Resolver. Either lookup may be nil, in which case
// every reference through it fails to resolve. A lookup with an Init method
// is built before the first resolution and its build error is returned as is.
func NewResolver(entities data.Lookup, sections page.SectionLookup) *Resolver {
	return &Resolver{entities: entities, sections: sections}
}

// scope is the argument binding of one group invocation.
type scope struct {
	group string
	args  map[string]string
}

func (s *scope) has(name string) bool {
	_, ok := s.args[name]
	return ok
}

// ResolveSteps binds callerArgs against g's schema and returns freshly built
// resolved steps keyed by mergeKeyPrefix + step key. Any failure aborts the
// whole call.
func (r *Resolver) ResolveSteps(g *ActionGroupObject, callerArgs map[string]string, mergeKeyPrefix string) (*StepList, error) {
	if err := r.init(); err != nil {
		return nil, err
	}
	bound, err := g.bindArguments(callerArgs)
	if err != nil {
		return nil, err
	}
	sc := &scope{group: g.name, args: bound}

	out := newStepList(len(g.steps))
	for _, step := range g.steps {
		resolved, err := r.resolveStep(step, sc, mergeKeyPrefix)
		if err != nil {
			return nil, err
		}
		if !out.add(resolved) {
			return nil, fmt.Errorf("%w: merge key %q in action group %q", ErrDuplicateStepKey, resolved.StepKey(), g.name)
		}
	}
	return out, nil
}

func (r *Resolver) init() error {
	for _, lookup := range []any{r.entities, r.sections} {
		if in, ok := lookup.(initializer); ok {
			if err := in.Init(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Resolver) resolveStep(step *ActionObject, sc *scope, prefix string) (*ActionObject, error) {
	attrs := make([]Attribute, 0, step.attributes.Len())
	for _, a := range step.attributes.items {
		value, err := r.resolveValue(a.Value, sc)
		if err != nil {
			var refErr *ReferenceError
			if errors.As(err, &refErr) {
				refErr.Group = sc.group
				refErr.Step = step.StepKey()
				refErr.Attribute = a.Name
			}
			return nil, err
		}
		attrs = append(attrs, Attribute{Name: a.Name, Value: value})
	}
	return NewActionObject(prefix+step.StepKey(), step.Type(), NewAttributes(attrs...)), nil
}

// resolveValue replaces every {{...}} token of raw and splices the results
// back into the surrounding text.
func (r *Resolver) resolveValue(raw string, sc *scope) (string, error) {
	segs := tokenize(raw)
	var b strings.Builder
	for _, seg := range segs {
		if !seg.isToken {
			b.WriteString(seg.text)
			continue
		}
		ref, err := Classify(seg.text, sc.has)
		if err != nil {
			return "", unresolved(seg.text, err.Error(), nil)
		}
		value, err := r.resolveReference(ref, sc)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

func (r *Resolver) resolveReference(ref Reference, sc *scope) (string, error) {
	switch ref.Kind {
	case KindLiteral:
		return ref.Text, nil
	case KindPersistedRef:
		return ref.Depth.Wrap(ref.Name), nil
	case KindArgument:
		return r.resolveArgument(ref, sc), nil
	case KindArgumentField:
		return r.resolveArgumentField(ref, sc)
	case KindEntityField:
		return r.resolveEntityField(ref)
	case KindElementCall:
		return r.resolveElementCall(ref, sc)
	default:
		return "", unresolved(ref.Raw, fmt.Sprintf("unsupported reference kind %s", ref.Kind), nil)
	}
}

// resolveArgument substitutes the bound value. A value naming an existing
// entity field is replaced by that field; anything else is used verbatim.
func (r *Resolver) resolveArgument(ref Reference, sc *scope) string {
	value := sc.args[ref.Name]
	if _, _, ok := ParsePersisted(value); ok {
		return value
	}
	if m := fieldPattern.FindStringSubmatch(value); m != nil {
		if v, ok := r.lookupField(m[1], m[2]); ok {
			return v
		}
	}
	return value
}

func (r *Resolver) resolveArgumentField(ref Reference, sc *scope) (string, error) {
	value := sc.args[ref.Name]
	if name, depth, ok := ParsePersisted(value); ok {
		return depth.Wrap(name + "." + ref.Field), nil
	}

	entity, ok := r.lookupEntity(value)
	if !ok {
		return "", unresolved(ref.Raw,
			fmt.Sprintf("entity %q bound to argument %q not found", value, ref.Name), nil)
	}
	field, ok := entity.Field(ref.Field)
	if !ok {
		return "", unresolved(ref.Raw,
			fmt.Sprintf("entity %q has no field %q", value, ref.Field), nil)
	}
	return field.String(), nil
}

// resolveEntityField looks up entity.field. If no such entity exists but a
// section does, the reference is read as section.element and yields the
// element's selector.
func (r *Resolver) resolveEntityField(ref Reference) (string, error) {
	if entity, ok := r.lookupEntity(ref.Name); ok {
		field, ok := entity.Field(ref.Field)
		if !ok {
			return "", unresolved(ref.Raw,
				fmt.Sprintf("entity %q has no field %q", ref.Name, ref.Field), nil)
		}
		return field.String(), nil
	}

	if r.sections != nil {
		if el, err := r.sections.GetElement(ref.Name, ref.Field); err == nil {
			if el.Parameterized() {
				return "", unresolved(ref.Raw,
					fmt.Sprintf("element %q requires a parameter", ref.Field), nil)
			}
			return el.Selector(), nil
		}
	}

	return "", unresolved(ref.Raw, fmt.Sprintf("entity %q not found", ref.Name), nil)
}

func (r *Resolver) resolveElementCall(ref Reference, sc *scope) (string, error) {
	if ref.Param == nil || ref.Param.Kind == KindElementCall {
		return "", unresolved(ref.Raw, "element parameter must be an argument, entity field or persisted reference", nil)
	}
	param, err := r.resolveReference(*ref.Param, sc)
	if err != nil {
		return "", err
	}

	if r.sections == nil {
		return "", unresolved(ref.Raw, fmt.Sprintf("section %q not found", ref.Name), page.ErrSectionNotFound)
	}
	el, err := r.sections.GetElement(ref.Name, ref.Field)
	if err != nil {
		return "", unresolved(ref.Raw, "", err)
	}
	selector, err := el.ResolveSelector(param)
	if err != nil {
		return "", unresolved(ref.Raw, err.Error(), nil)
	}
	return selector, nil
}

func (r *Resolver) lookupEntity(name string) (*data.EntityDataObject, bool) {
	if r.entities == nil {
		return nil, false
	}
	return r.entities.GetObject(name)
}

func (r *Resolver) lookupField(entityName, field string) (string, bool) {
	entity, ok := r.lookupEntity(entityName)
	if !ok {
		return "", false
	}
	v, ok := entity.Field(field)
	if !ok {
		return "", false
	}
	return v.String(), true
}
