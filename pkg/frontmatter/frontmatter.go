// Package frontmatter extracts and parses the manifest block that sits
// between two "---" lines at the top of a Markdown document.
//
// The parser understands the small YAML subset skill manifests use: flat
// "key: value" lines, quoted scalars, folded (">", ">-") and literal
// ("|", "|-") multi-line scalars, and one or more levels of indented
// mappings or "- item" sequences under a key with an empty value. Anything
// else is ignored rather than rejected so that manifests stay
// forward-compatible.
package frontmatter

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Delimiter opens and closes the manifest block
const Delimiter = "---"

// ErrNoFrontmatter is returned by Parse when the document does not start
// with a delimited manifest block
var ErrNoFrontmatter = errors.New("no frontmatter found")

var keyLinePattern = regexp.MustCompile(`^([\w-]+):\s*(.*)$`)

// Document is a parsed manifest plus the text that follows it
type Document struct {
	Fields Fields
	// Body is everything after the closing delimiter line, untrimmed
	Body string
}

// Parse extracts and parses the manifest block of content
func Parse(content string) (*Document, error) {
	block, body, found := Extract(content)
	if !found {
		return nil, ErrNoFrontmatter
	}

	return &Document{
		Fields: ParseBlock(block),
		Body:   body,
	}, nil
}

// Extract splits content into the raw manifest block and the body. found is
// false when the first line is not a delimiter or the block is never closed.
// An empty block still reports found.
func Extract(content string) (block, body string, found bool) {
	content = strings.TrimPrefix(content, "\ufeff")

	first, rest, _ := strings.Cut(content, "\n")
	if strings.TrimSuffix(first, "\r") != Delimiter {
		return "", "", false
	}

	var lines []string
	for rest != "" {
		line, next, more := strings.Cut(rest, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == Delimiter {
			return strings.Join(lines, "\n"), next, true
		}
		lines = append(lines, line)
		if !more {
			break
		}
		rest = next
	}

	return "", "", false
}

type parseState int

const (
	scanningKeys parseState = iota
	accumulatingMultiline
	accumulatingNested
)

// blockParser is a line-driven state machine over a manifest block
type blockParser struct {
	state  parseState
	fields Fields
	key    string
	folded []string
	nested []string
}

// ParseBlock parses the lines of a manifest block (without delimiters)
func ParseBlock(block string) Fields {
	p := &blockParser{}
	for _, line := range strings.Split(block, "\n") {
		p.feed(strings.TrimSuffix(line, "\r"))
	}
	p.flush()
	return p.fields
}

func (p *blockParser) feed(line string) {
	switch p.state {
	case accumulatingMultiline:
		if !startsKey(line) {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				p.folded = append(p.folded, trimmed)
			}
			return
		}
		p.flush()
	case accumulatingNested:
		if strings.TrimSpace(line) == "" || isIndented(line) || isSequenceItem(line) {
			p.nested = append(p.nested, line)
			return
		}
		p.flush()
	}

	p.scan(line)
}

func (p *blockParser) scan(line string) {
	m := keyLinePattern.FindStringSubmatch(line)
	if m == nil {
		return
	}

	key, raw := m[1], stripComment(strings.TrimSpace(m[2]))
	switch raw {
	case ">", ">-", "|", "|-":
		p.key = key
		p.state = accumulatingMultiline
	case "":
		p.key = key
		p.state = accumulatingNested
	default:
		p.fields.set(key, ScalarValue(unquote(raw)))
	}
}

func (p *blockParser) flush() {
	switch p.state {
	case accumulatingMultiline:
		p.fields.set(p.key, ScalarValue(strings.Join(p.folded, " ")))
	case accumulatingNested:
		p.fields.set(p.key, foldNested(p.nested))
	}

	p.state = scanningKeys
	p.key = ""
	p.folded = nil
	p.nested = nil
}

// foldNested turns the indented lines collected under an empty-valued key
// into a mapping or a sequence. No content at all means an empty scalar.
func foldNested(lines []string) Value {
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	if indent == -1 {
		return ScalarValue("")
	}

	dedented := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			dedented = append(dedented, "")
			continue
		}
		dedented = append(dedented, line[indent:])
	}

	for _, line := range dedented {
		if line == "" {
			continue
		}
		if isSequenceItem(line) {
			return foldSequence(dedented)
		}
		break
	}

	return MappingValue(ParseBlock(strings.Join(dedented, "\n")))
}

func foldSequence(lines []string) Value {
	var items []Value
	for _, line := range lines {
		if !isSequenceItem(line) {
			continue
		}
		items = append(items, ScalarValue(unquote(stripComment(strings.TrimSpace(strings.TrimPrefix(line, "-"))))))
	}
	return SequenceValue(items...)
}

func startsKey(line string) bool {
	if line == "" || isIndented(line) {
		return false
	}
	return keyLinePattern.MatchString(line)
}

func isIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

func isSequenceItem(line string) bool {
	return line == "-" || strings.HasPrefix(line, "- ")
}

// stripComment drops a trailing "# comment" from a trimmed value. A "#"
// only starts a comment at the beginning of the value or after whitespace,
// and never inside a quoted scalar.
func stripComment(s string) string {
	if s == "" {
		return s
	}
	if q := s[0]; q == '"' || q == '\'' {
		if end := strings.IndexByte(s[1:], q); end != -1 {
			if rest := strings.TrimSpace(s[end+2:]); strings.HasPrefix(rest, "#") {
				return s[:end+2]
			}
		}
		return s
	}
	if s[0] == '#' {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '#' && (s[i-1] == ' ' || s[i-1] == '\t') {
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
