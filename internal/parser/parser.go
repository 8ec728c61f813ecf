package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

// Parser extracts description records (entities, operations, pages,
// sections and action groups) from the content of one file.
type Parser interface {
	Parse(filePath string, content []byte) (*domain.Descriptions, error)
	SupportedExtensions() []string
}

// ParserRegistry selects the description parser for a file by extension.
type ParserRegistry interface {
	Register(parser Parser)
	ParserFor(extension string) (Parser, error)
}

// DefaultRegistry is a parser registry safe for the loader's concurrent
// parse workers. Extensions are matched case-insensitively.
type DefaultRegistry struct {
	mu       sync.RWMutex
	parsers  map[string]Parser
	fallback Parser
}

// NewRegistry creates a new DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		parsers: make(map[string]Parser),
	}
}

// NewDefaultRegistry returns a registry holding the YAML parser and a Markdown
// parser selecting fenced blocks tagged with any of markdownTags.
func NewDefaultRegistry(markdownTags []string) *DefaultRegistry {
	r := NewRegistry()
	r.Register(NewYAMLParser())
	r.Register(NewMarkdownParser(markdownTags))
	return r
}

// Register adds a parser to the registry for each of its supported extensions.
func (r *DefaultRegistry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range p.SupportedExtensions() {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		r.parsers[ext] = p
	}
}

// SetFallback sets the fallback parser for unregistered extensions.
func (r *DefaultRegistry) SetFallback(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = p
}

// ParserFor returns the parser registered for the given file extension.
// If no parser is found, it returns the fallback parser if set.
func (r *DefaultRegistry) ParserFor(extension string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if p, ok := r.parsers[ext]; ok {
		return p, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no description parser registered for extension %q", extension)
}
