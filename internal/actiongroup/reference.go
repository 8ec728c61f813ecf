package actiongroup

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags the form of a placeholder reference.
type Kind int

const (
	KindLiteral Kind = iota
	KindArgument
	KindArgumentField
	KindEntityField
	KindPersistedRef
	KindElementCall
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	case KindArgumentField:
		return "argument field"
	case KindEntityField:
		return "entity field"
	case KindPersistedRef:
		return "persisted reference"
	case KindElementCall:
		return "element call"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Depth is the scope of a persisted reference: $x$ or $$x$$.
type Depth int

const (
	DepthSingle Depth = 1
	DepthDouble Depth = 2
)

// Wrap surrounds name with the depth's dollar markers.
func (d Depth) Wrap(name string) string {
	marker := strings.Repeat("$", int(d))
	return marker + name + marker
}

// Reference is a classified placeholder.
//
//	KindLiteral        Text
//	KindArgument       Name
//	KindArgumentField  Name, Field
//	KindEntityField    Name, Field
//	KindPersistedRef   Name, Depth
//	KindElementCall    Name (section), Field (element), Param
type Reference struct {
	Kind  Kind
	Raw   string
	Text  string
	Name  string
	Field string
	Depth Depth
	Param *Reference
}

var (
	tokenPattern       = regexp.MustCompile(`\{\{([^{}]*)\}\}`)
	elementCallPattern = regexp.MustCompile(`^([\w-]+)\.([\w-]+)\((.*)\)$`)
	doublePersisted    = regexp.MustCompile(`^\$\$([^$]+)\$\$$`)
	singlePersisted    = regexp.MustCompile(`^\$([^$]+)\$$`)
	quotedPattern      = regexp.MustCompile(`^(?:'([^']*)'|"([^"]*)")$`)
	fieldPattern       = regexp.MustCompile(`^([\w-]+)\.([\w-]+)$`)
	namePattern        = regexp.MustCompile(`^[\w-]+$`)
)

// ParsePersisted reports whether s is a persisted reference and returns its
// inner name and depth.
func ParsePersisted(s string) (string, Depth, bool) {
	if m := doublePersisted.FindStringSubmatch(s); m != nil {
		return m[1], DepthDouble, true
	}
	if m := singlePersisted.FindStringSubmatch(s); m != nil {
		return m[1], DepthSingle, true
	}
	return "", 0, false
}

// Classify turns the inner text of a {{...}} token into a Reference.
// inScope reports whether a name is a declared argument of the enclosing group.
func Classify(expr string, inScope func(string) bool) (Reference, error) {
	expr = strings.TrimSpace(expr)
	if m := elementCallPattern.FindStringSubmatch(expr); m != nil {
		param, err := classifyParam(m[3], inScope)
		if err != nil {
			return Reference{}, err
		}
		return Reference{Kind: KindElementCall, Raw: expr, Name: m[1], Field: m[2], Param: &param}, nil
	}
	return classifyPlain(expr, inScope)
}

func classifyParam(expr string, inScope func(string) bool) (Reference, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Reference{}, fmt.Errorf("empty element parameter")
	}
	if elementCallPattern.MatchString(expr) {
		return Reference{}, fmt.Errorf("nested element call %q is not supported", expr)
	}
	if m := quotedPattern.FindStringSubmatch(expr); m != nil {
		return Reference{Kind: KindLiteral, Raw: expr, Text: m[1] + m[2]}, nil
	}
	return classifyPlain(expr, inScope)
}

func classifyPlain(expr string, inScope func(string) bool) (Reference, error) {
	if name, depth, ok := ParsePersisted(expr); ok {
		return Reference{Kind: KindPersistedRef, Raw: expr, Name: name, Depth: depth}, nil
	}
	if m := fieldPattern.FindStringSubmatch(expr); m != nil {
		if inScope(m[1]) {
			return Reference{Kind: KindArgumentField, Raw: expr, Name: m[1], Field: m[2]}, nil
		}
		return Reference{Kind: KindEntityField, Raw: expr, Name: m[1], Field: m[2]}, nil
	}
	if namePattern.MatchString(expr) && inScope(expr) {
		return Reference{Kind: KindArgument, Raw: expr, Name: expr}, nil
	}
	return Reference{}, fmt.Errorf("%q is not a declared argument, entity field or element reference", expr)
}

// segment is a piece of a raw attribute value: literal text or a token.
type segment struct {
	text    string
	isToken bool
}

// tokenize splits raw into literal text and {{...}} tokens. For tokens, text
// holds the inner expression.
func tokenize(raw string) []segment {
	var segs []segment
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(raw, -1) {
		if loc[0] > last {
			segs = append(segs, segment{text: raw[last:loc[0]]})
		}
		segs = append(segs, segment{text: raw[loc[2]:loc[3]], isToken: true})
		last = loc[1]
	}
	if last < len(raw) {
		segs = append(segs, segment{text: raw[last:]})
	}
	return segs
}
