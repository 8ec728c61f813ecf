package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

// MarkdownParser extracts descriptions from tagged fenced code blocks of
// Markdown documents using goldmark.
type MarkdownParser struct {
	tags map[string]bool
}

// blockOptions are the key=value attributes of a fence info string.
type blockOptions struct {
	Kind string `mapstructure:"kind"`
	Skip bool   `mapstructure:"skip"`
}

// NewMarkdownParser creates a new MarkdownParser selecting blocks tagged with
// any of tags.
func NewMarkdownParser(tags []string) *MarkdownParser {
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}
	return &MarkdownParser{tags: tagSet}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *MarkdownParser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Parse walks the document and decodes every tagged YAML block.
//
//	```yaml stepresolver kind=data
//	entities: [...]
//	```
func (p *MarkdownParser) Parse(filePath string, content []byte) (*domain.Descriptions, error) {
	md := goldmark.New()
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader)

	parsed := &domain.Descriptions{}

	var currentHeading string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			currentHeading = extractText(node, content)

		case *ast.FencedCodeBlock:
			var info string
			if node.Info != nil {
				info = string(node.Info.Segment.Value(content))
			}
			words, attrs := parseInfoString(info)
			if !p.selects(words) {
				return ast.WalkContinue, nil
			}

			line := 0
			if node.Lines().Len() > 0 {
				line = lineNumber(content, node.Lines().At(0).Start)
			}

			var opts blockOptions
			if err := decodeOptions(attrs, &opts); err != nil {
				return ast.WalkStop, domain.NewError("parse", filePath, line, "invalid block attributes", err)
			}
			if opts.Skip {
				return ast.WalkContinue, nil
			}

			var buf bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(content))
			}

			source := fmt.Sprintf("%s:%d", filePath, line)
			descs, err := decodeDescriptions(buf.Bytes(), source)
			if err != nil {
				return ast.WalkStop, domain.NewErrorWithSuggestion("parse", filePath, line,
					fmt.Sprintf("failed to decode description block under %q", currentHeading),
					"line numbers inside the cause are relative to the start of the block",
					err)
			}
			if err := checkKind(opts.Kind, descs); err != nil {
				return ast.WalkStop, domain.NewError("parse", filePath, line, err.Error(), nil)
			}
			parsed.Merge(descs)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return parsed, nil
}

// selects reports whether any bare word of the info string is a configured tag.
func (p *MarkdownParser) selects(words []string) bool {
	for _, w := range words {
		if p.tags[w] {
			return true
		}
	}
	return false
}

func decodeOptions(attrs map[string]string, opts *blockOptions) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           opts,
	})
	if err != nil {
		return err
	}
	return dec.Decode(attrs)
}

// checkKind verifies a block declared with kind=... holds only that kind.
func checkKind(kind string, d *domain.Descriptions) error {
	counts := map[string]int{
		"data":        len(d.Entities),
		"page":        len(d.Pages),
		"section":     len(d.Sections),
		"actiongroup": len(d.ActionGroups),
		"operation":   len(d.Operations),
	}
	if kind == "" {
		return nil
	}
	if _, ok := counts[kind]; !ok {
		return fmt.Errorf("unknown block kind %q (expected data, page, section, actiongroup or operation)", kind)
	}
	for k, n := range counts {
		if k != kind && n > 0 {
			return fmt.Errorf("block of kind %q also declares %s records", kind, k)
		}
	}
	return nil
}

// parseInfoString splits a fenced code block info string like:
//
//	"yaml stepresolver kind=data"
//
// into bare words and key=value attributes.
func parseInfoString(info string) ([]string, map[string]string) {
	attrs := make(map[string]string)
	var words []string
	for _, part := range splitInfoString(strings.TrimSpace(info)) {
		if idx := strings.Index(part, "="); idx > 0 {
			// Remove surrounding quotes
			attrs[part[:idx]] = strings.Trim(part[idx+1:], "\"'")
			continue
		}
		words = append(words, part)
	}
	return words, attrs
}

// splitInfoString splits the info string respecting quoted values.
func splitInfoString(s string) []string {
	var parts []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == quoteChar {
				inQuote = false
			}
			current.WriteByte(c)
		} else {
			if c == '"' || c == '\'' {
				inQuote = true
				quoteChar = c
				current.WriteByte(c)
			} else if c == ' ' || c == '\t' {
				if current.Len() > 0 {
					parts = append(parts, current.String())
					current.Reset()
				}
			} else {
				current.WriteByte(c)
			}
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// extractText gets the text content of a heading node.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
