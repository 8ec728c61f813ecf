package page

import (
	"fmt"
	"regexp"
	"sort"
)

// placeholderPattern matches the substitution placeholder of a parameterized selector.
var placeholderPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// PageObject is a named page. It references its sections by name only.
type PageObject struct {
	name         string
	urlPath      string
	module       string
	sectionNames []string
}

// NewPageObject creates a page.
func NewPageObject(name, urlPath, module string, sectionNames []string) *PageObject {
	return &PageObject{
		name:         name,
		urlPath:      urlPath,
		module:       module,
		sectionNames: append([]string(nil), sectionNames...),
	}
}

func (p *PageObject) Name() string { return p.name }

func (p *PageObject) URLPath() string { return p.urlPath }

func (p *PageObject) Module() string { return p.module }

// SectionNames returns the names of the page's sections in declaration order.
func (p *PageObject) SectionNames() []string {
	return append([]string(nil), p.sectionNames...)
}

// Sections fetches the page's sections through repo.
func (p *PageObject) Sections(repo *SectionRepository) ([]*SectionObject, error) {
	sections := make([]*SectionObject, 0, len(p.sectionNames))
	for _, name := range p.sectionNames {
		s, err := repo.GetObject(name)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", p.name, err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// SectionObject is a named group of elements.
type SectionObject struct {
	name     string
	elements map[string]*ElementObject
}

// NewSectionObject creates a section. A repeated element name keeps the last
// element.
func NewSectionObject(name string, elements ...*ElementObject) *SectionObject {
	s := &SectionObject{name: name, elements: make(map[string]*ElementObject, len(elements))}
	for _, el := range elements {
		s.elements[el.name] = el
	}
	return s
}

func (s *SectionObject) Name() string { return s.name }

// GetElement returns the named element of the section.
func (s *SectionObject) GetElement(name string) (*ElementObject, bool) {
	e, ok := s.elements[name]
	return e, ok
}

// ElementNames returns the sorted element names.
func (s *SectionObject) ElementNames() []string {
	names := make([]string, 0, len(s.elements))
	for name := range s.elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ElementObject is a UI element located by a selector. The selector may embed
// one {{var}} placeholder filled in at resolution time.
type ElementObject struct {
	name         string
	selectorType string
	selector     string
	timeout      *int
	clickable    bool
}

// NewElementObject creates an element. A nil timeout means none was declared.
func NewElementObject(name, selectorType, selector string, timeout *int, clickable bool) *ElementObject {
	el := &ElementObject{
		name:         name,
		selectorType: selectorType,
		selector:     selector,
		clickable:    clickable,
	}
	if timeout != nil {
		t := *timeout
		el.timeout = &t
	}
	return el
}

func (e *ElementObject) Name() string { return e.name }

func (e *ElementObject) SelectorType() string { return e.selectorType }

func (e *ElementObject) Selector() string { return e.selector }

func (e *ElementObject) Clickable() bool { return e.clickable }

// Timeout returns the declared timeout in seconds.
func (e *ElementObject) Timeout() (int, bool) {
	if e.timeout == nil {
		return 0, false
	}
	return *e.timeout, true
}

// Parameterized reports whether the selector contains a placeholder.
func (e *ElementObject) Parameterized() bool {
	return placeholderPattern.MatchString(e.selector)
}

// ResolveSelector replaces the selector's placeholder with param. The result
// is not scanned again.
func (e *ElementObject) ResolveSelector(param string) (string, error) {
	loc := placeholderPattern.FindStringIndex(e.selector)
	if loc == nil {
		return "", fmt.Errorf("element %q is not parameterized", e.name)
	}
	return e.selector[:loc[0]] + param + e.selector[loc[1]:], nil
}
