package skills

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	remotePrefixes = []string{"http://", "https://", "mailto:", "#"}

	inlineLinkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)
	// Code spans that goldmark leaves inside raw HTML blocks
	backtickSpanPattern = regexp.MustCompile("`[^`]+`")
)

// extractReferences returns the local targets of inline [text](target)
// links in body, in document order. Code blocks and code spans are blanked
// first so example syntax inside them is not treated as a reference. Links
// inside raw HTML blocks still count; reference-style definitions do not.
func extractReferences(body string) []string {
	stripped := backtickSpanPattern.ReplaceAllStringFunc(string(blankCode([]byte(body))), func(span string) string {
		return strings.Repeat(" ", len(span))
	})

	var refs []string
	for _, m := range inlineLinkPattern.FindAllStringSubmatch(stripped, -1) {
		if href := m[1]; isLocalReference(href) {
			refs = append(refs, href)
		}
	}
	return refs
}

// blankCode returns a copy of source with the contents of every code block
// and code span replaced by spaces. Newlines are kept.
func blankCode(source []byte) []byte {
	out := make([]byte, len(source))
	copy(out, source)

	blank := func(seg text.Segment) {
		for i := seg.Start; i < seg.Stop && i < len(out); i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				blank(lines.At(i))
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					blank(t.Segment)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return out
}

func isLocalReference(href string) bool {
	if href == "" {
		return false
	}
	for _, prefix := range remotePrefixes {
		if strings.HasPrefix(href, prefix) {
			return false
		}
	}
	return true
}

// referencePath drops a trailing "#fragment" from a local target
func referencePath(href string) string {
	if idx := strings.Index(href, "#"); idx != -1 {
		return href[:idx]
	}
	return href
}
