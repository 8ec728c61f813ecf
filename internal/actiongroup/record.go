package actiongroup

import "github.com/fjglira/GoE2E-StepResolver/internal/domain"

// FromRecord builds an ActionGroupObject from a parsed record.
func FromRecord(rec domain.ActionGroupRecord, opts ...Option) (*ActionGroupObject, error) {
	args := make([]Argument, len(rec.Arguments))
	for i, a := range rec.Arguments {
		args[i] = Argument{Name: a.Name, Default: a.Default}
	}

	steps := make([]*ActionObject, len(rec.Steps))
	for i, s := range rec.Steps {
		attrs := make([]Attribute, len(s.Attributes))
		for j, kv := range s.Attributes {
			attrs[j] = Attribute{Name: kv.Key, Value: kv.Value}
		}
		steps[i] = NewActionObject(s.StepKey, s.Type, NewAttributes(attrs...))
	}

	return NewActionGroupObject(rec.Name, args, steps, opts...)
}
