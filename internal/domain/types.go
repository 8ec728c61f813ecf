package domain

// Descriptions holds every record parsed from a set of description files.
type Descriptions struct {
	Entities     []EntityRecord      `yaml:"entities"`
	Pages        []PageRecord        `yaml:"pages"`
	Sections     []SectionRecord     `yaml:"sections"`
	ActionGroups []ActionGroupRecord `yaml:"actionGroups"`
	Operations   []OperationRecord   `yaml:"operations"`
}

// Merge appends the records of other to d, preserving order.
func (d *Descriptions) Merge(other *Descriptions) {
	if other == nil {
		return
	}
	d.Entities = append(d.Entities, other.Entities...)
	d.Pages = append(d.Pages, other.Pages...)
	d.Sections = append(d.Sections, other.Sections...)
	d.ActionGroups = append(d.ActionGroups, other.ActionGroups...)
	d.Operations = append(d.Operations, other.Operations...)
}

// Empty reports whether no records of any kind are present.
func (d *Descriptions) Empty() bool {
	return len(d.Entities) == 0 && len(d.Pages) == 0 &&
		len(d.Sections) == 0 && len(d.ActionGroups) == 0 && len(d.Operations) == 0
}

// EntityRecord is a parsed data entity definition.
type EntityRecord struct {
	Name             string                 `yaml:"name"`
	Type             string                 `yaml:"type"`
	Data             []DataRecord           `yaml:"data"`
	Arrays           []ArrayRecord          `yaml:"array"`
	RequiredEntities []RequiredEntityRecord `yaml:"required-entity"`
	Source           string                 `yaml:"-"`
}

// DataRecord is a single scalar field of an entity.
type DataRecord struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// ArrayRecord is a list-valued field of an entity.
type ArrayRecord struct {
	Key   string   `yaml:"key"`
	Items []string `yaml:"items"`
}

// RequiredEntityRecord links an entity to another entity by name.
type RequiredEntityRecord struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// PageRecord is a parsed page definition. Only section names are kept.
type PageRecord struct {
	Name     string   `yaml:"name"`
	URLPath  string   `yaml:"urlPath"`
	Module   string   `yaml:"module"`
	Sections []string `yaml:"sections"`
	Source   string   `yaml:"-"`
}

// SectionRecord is a parsed section definition.
type SectionRecord struct {
	Name     string          `yaml:"name"`
	Elements []ElementRecord `yaml:"elements"`
	Source   string          `yaml:"-"`
}

// ElementRecord is a single named UI element of a section.
type ElementRecord struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Selector  string `yaml:"selector"`
	Timeout   *int   `yaml:"timeout"`
	Clickable bool   `yaml:"clickable"`
}

// OperationRecord describes the request used to perform an operation
// (create, get, update, delete) on entities of one data type.
type OperationRecord struct {
	Name         string                 `yaml:"name"`
	Operation    string                 `yaml:"operation"`
	DataType     string                 `yaml:"dataType"`
	Method       string                 `yaml:"method"`
	URL          string                 `yaml:"url"`
	Auth         string                 `yaml:"auth"`
	ContentType  string                 `yaml:"contentType"`
	Headers      AttributeRecord        `yaml:"headers"`
	Query        AttributeRecord        `yaml:"query"`
	Fields       []OperationFieldRecord `yaml:"fields"`
	SuccessRegex string                 `yaml:"successRegex"`
	ReturnRegex  string                 `yaml:"returnRegex"`
	Source       string                 `yaml:"-"`
}

// OperationFieldRecord is one request body field of an operation.
type OperationFieldRecord struct {
	Key      string `yaml:"key"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
}

// ActionGroupRecord is a parsed action group definition.
type ActionGroupRecord struct {
	Name      string           `yaml:"name"`
	Arguments []ArgumentRecord `yaml:"arguments"`
	Steps     []StepRecord     `yaml:"steps"`
	Source    string           `yaml:"-"`
}

// ArgumentRecord declares one action group argument. A nil Default makes the
// argument required.
type ArgumentRecord struct {
	Name    string  `yaml:"name"`
	Default *string `yaml:"default"`
}

// StepRecord is one raw, unresolved action step.
type StepRecord struct {
	StepKey    string          `yaml:"stepKey"`
	Type       string          `yaml:"type"`
	Attributes AttributeRecord `yaml:"attributes"`
}

// AttributeRecord is an ordered list of raw step attributes.
type AttributeRecord []KeyValue

// KeyValue is one ordered attribute entry.
type KeyValue struct {
	Key   string
	Value string
}
