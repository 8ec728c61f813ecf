package page

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

var (
	// ErrSectionNotFound is returned for an unknown section name.
	ErrSectionNotFound = errors.New("section not found")
	// ErrElementNotFound is returned for an unknown element name.
	ErrElementNotFound = errors.New("element not found")
)

// SectionLookup finds sections and their elements.
type SectionLookup interface {
	GetObject(name string) (*SectionObject, error)
	GetElement(section, element string) (*ElementObject, error)
}

// PageRepository is a build-once cache of pages.
type PageRepository struct {
	records []domain.PageRecord

	once  sync.Once
	pages map[string]*PageObject
}

// NewPageRepository creates a PageRepository built lazily from records.
func NewPageRepository(records []domain.PageRecord) *PageRepository {
	return &PageRepository{records: records}
}

func (r *PageRepository) init() {
	r.once.Do(func() {
		r.pages = make(map[string]*PageObject, len(r.records))
		for _, rec := range r.records {
			r.pages[rec.Name] = NewPageObject(rec.Name, rec.URLPath, rec.Module, rec.Sections)
		}
	})
}

// GetObject returns the page with the given name.
func (r *PageRepository) GetObject(name string) (*PageObject, bool) {
	r.init()
	p, ok := r.pages[name]
	return p, ok
}

// GetAllObjects returns a copy of the name to page mapping.
func (r *PageRepository) GetAllObjects() map[string]*PageObject {
	r.init()
	out := make(map[string]*PageObject, len(r.pages))
	for k, v := range r.pages {
		out[k] = v
	}
	return out
}

// SectionRepository is a build-once cache of sections.
type SectionRepository struct {
	records []domain.SectionRecord

	once     sync.Once
	sections map[string]*SectionObject
}

// NewSectionRepository creates a SectionRepository built lazily from records.
func NewSectionRepository(records []domain.SectionRecord) *SectionRepository {
	return &SectionRepository{records: records}
}

// NewSectionRepositoryFromObjects creates a SectionRepository over ready-made sections.
func NewSectionRepositoryFromObjects(sections ...*SectionObject) *SectionRepository {
	r := &SectionRepository{sections: make(map[string]*SectionObject, len(sections))}
	for _, s := range sections {
		r.sections[s.Name()] = s
	}
	r.once.Do(func() {})
	return r
}

func (r *SectionRepository) init() {
	r.once.Do(func() {
		r.sections = make(map[string]*SectionObject, len(r.records))
		for _, rec := range r.records {
			elements := make([]*ElementObject, len(rec.Elements))
			for i, el := range rec.Elements {
				elements[i] = NewElementObject(el.Name, el.Type, el.Selector, el.Timeout, el.Clickable)
			}
			r.sections[rec.Name] = NewSectionObject(rec.Name, elements...)
		}
	})
}

// GetObject returns the named section or an ErrSectionNotFound error.
func (r *SectionRepository) GetObject(name string) (*SectionObject, error) {
	r.init()
	s, ok := r.sections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, name)
	}
	return s, nil
}

// GetElement returns the named element of the named section.
func (r *SectionRepository) GetElement(section, element string) (*ElementObject, error) {
	s, err := r.GetObject(section)
	if err != nil {
		return nil, err
	}
	e, ok := s.GetElement(element)
	if !ok {
		return nil, fmt.Errorf("%w: %q in section %q", ErrElementNotFound, element, section)
	}
	return e, nil
}

// GetAllObjects returns a copy of the name to section mapping.
func (r *SectionRepository) GetAllObjects() map[string]*SectionObject {
	r.init()
	out := make(map[string]*SectionObject, len(r.sections))
	for k, v := range r.sections {
		out[k] = v
	}
	return out
}
