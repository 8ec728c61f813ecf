package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

// YAMLParser parses description files written in YAML. A file may hold
// several documents separated by "---".
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *YAMLParser) SupportedExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Parse decodes every document of content into description records.
func (p *YAMLParser) Parse(filePath string, content []byte) (*domain.Descriptions, error) {
	descs, err := decodeDescriptions(content, filePath)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("parse", filePath, 0,
			"failed to decode description file",
			"check the file against the description format: top-level keys are entities, pages, sections, actionGroups and operations",
			err)
	}
	return descs, nil
}

// decodeDescriptions decodes a YAML stream and stamps every record with source.
// Unknown keys are rejected so typos in descriptions surface early.
func decodeDescriptions(content []byte, source string) (*domain.Descriptions, error) {
	out := &domain.Descriptions{}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	for {
		var doc domain.Descriptions
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out.Merge(&doc)
	}

	for i := range out.Entities {
		if out.Entities[i].Name == "" {
			return nil, fmt.Errorf("entity #%d has no name", i+1)
		}
		out.Entities[i].Source = source
	}
	for i := range out.Pages {
		if out.Pages[i].Name == "" {
			return nil, fmt.Errorf("page #%d has no name", i+1)
		}
		out.Pages[i].Source = source
	}
	for i := range out.Sections {
		if out.Sections[i].Name == "" {
			return nil, fmt.Errorf("section #%d has no name", i+1)
		}
		out.Sections[i].Source = source
	}
	for i := range out.ActionGroups {
		if out.ActionGroups[i].Name == "" {
			return nil, fmt.Errorf("action group #%d has no name", i+1)
		}
		out.ActionGroups[i].Source = source
	}
	for i := range out.Operations {
		if out.Operations[i].Name == "" {
			return nil, fmt.Errorf("operation #%d has no name", i+1)
		}
		out.Operations[i].Source = source
	}
	return out, nil
}
