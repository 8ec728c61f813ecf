package actiongroup

// Attribute is one named step attribute.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute bag. The zero value is empty.
type Attributes struct {
	items []Attribute
}

// NewAttributes builds an ordered bag. A repeated name keeps its first
// position and its last value.
func NewAttributes(attrs ...Attribute) Attributes {
	items := make([]Attribute, 0, len(attrs))
	index := make(map[string]int, len(attrs))
	for _, a := range attrs {
		if i, ok := index[a.Name]; ok {
			items[i].Value = a.Value
			continue
		}
		index[a.Name] = len(items)
		items = append(items, a)
	}
	return Attributes{items: items}
}

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	for _, item := range a.items {
		if item.Name == name {
			return item.Value, true
		}
	}
	return "", false
}

// Keys returns attribute names in order.
func (a Attributes) Keys() []string {
	keys := make([]string, len(a.items))
	for i, item := range a.items {
		keys[i] = item.Name
	}
	return keys
}

// All returns a copy of the attributes in order.
func (a Attributes) All() []Attribute {
	return append([]Attribute(nil), a.items...)
}

// Map returns the attributes as an unordered map.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(a.items))
	for _, item := range a.items {
		m[item.Name] = item.Value
	}
	return m
}

func (a Attributes) Len() int { return len(a.items) }

// ActionObject is one test step. It is immutable once built.
type ActionObject struct {
	stepKey    string
	actionType string
	attributes Attributes
}

// NewActionObject creates a step.
func NewActionObject(stepKey, actionType string, attributes Attributes) *ActionObject {
	return &ActionObject{
		stepKey:    stepKey,
		actionType: actionType,
		attributes: NewAttributes(attributes.items...),
	}
}

func (a *ActionObject) StepKey() string { return a.stepKey }

func (a *ActionObject) Type() string { return a.actionType }

// Attributes returns the step's attributes in order.
func (a *ActionObject) Attributes() Attributes {
	return NewAttributes(a.attributes.items...)
}

// CustomAttributes returns the step's attributes as a map.
func (a *ActionObject) CustomAttributes() map[string]string {
	return a.attributes.Map()
}

// StepList is an ordered mapping from merge key to resolved step.
type StepList struct {
	keys  []string
	steps map[string]*ActionObject
}

func newStepList(capacity int) *StepList {
	return &StepList{
		keys:  make([]string, 0, capacity),
		steps: make(map[string]*ActionObject, capacity),
	}
}

func (l *StepList) add(step *ActionObject) bool {
	if _, exists := l.steps[step.StepKey()]; exists {
		return false
	}
	l.keys = append(l.keys, step.StepKey())
	l.steps[step.StepKey()] = step
	return true
}

// Keys returns the merge keys in step order.
func (l *StepList) Keys() []string {
	return append([]string(nil), l.keys...)
}

// Get returns the step with the given merge key.
func (l *StepList) Get(mergeKey string) (*ActionObject, bool) {
	s, ok := l.steps[mergeKey]
	return s, ok
}

// Steps returns the steps in order.
func (l *StepList) Steps() []*ActionObject {
	out := make([]*ActionObject, len(l.keys))
	for i, k := range l.keys {
		out[i] = l.steps[k]
	}
	return out
}

func (l *StepList) Len() int { return len(l.keys) }
