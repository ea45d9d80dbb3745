package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBlock string
		wantBody  string
		wantFound bool
	}{
		{
			name:      "simple manifest",
			input:     "---\nname: alpha\n---\n\n# Alpha",
			wantBlock: "name: alpha",
			wantBody:  "\n# Alpha",
			wantFound: true,
		},
		{
			name:      "empty manifest",
			input:     "---\n---\nbody",
			wantBlock: "",
			wantBody:  "body",
			wantFound: true,
		},
		{
			name:      "closing delimiter at end of file",
			input:     "---\nname: alpha\n---",
			wantBlock: "name: alpha",
			wantBody:  "",
			wantFound: true,
		},
		{
			name:      "crlf line endings",
			input:     "---\r\nname: alpha\r\n---\r\nbody",
			wantBlock: "name: alpha",
			wantBody:  "body",
			wantFound: true,
		},
		{
			name:      "byte order mark",
			input:     "\ufeff---\nname: alpha\n---\nbody",
			wantBlock: "name: alpha",
			wantBody:  "body",
			wantFound: true,
		},
		{
			name:  "no opening delimiter",
			input: "# Just content\n---\n",
		},
		{
			name:  "unclosed block",
			input: "---\nname: alpha\n# No closing",
		},
		{
			name:  "delimiter with trailing text",
			input: "--- yaml\nname: alpha\n---\n",
		},
		{
			name:  "empty document",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, found := Extract(tt.input)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantBlock, block)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("fields and body", func(t *testing.T) {
		doc, err := Parse("---\nname: alpha\ndescription: \"Alpha skill.\"\n---\n\n# Alpha\n\nContent.")
		require.NoError(t, err)
		assert.Equal(t, "alpha", doc.Fields.String("name"))
		assert.Equal(t, "Alpha skill.", doc.Fields.String("description"))
		assert.Equal(t, "\n# Alpha\n\nContent.", doc.Body)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		doc, err := Parse("# Just content")
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ErrNoFrontmatter)
	})

	t.Run("empty frontmatter is not missing frontmatter", func(t *testing.T) {
		doc, err := Parse("---\n---\n# Body")
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Fields.Len())
		assert.Equal(t, "# Body", doc.Body)
	})
}

func TestParseBlockScalars(t *testing.T) {
	fields := ParseBlock(`name: my-skill
description: 'Single quoted'
license: MIT
empty:
unbalanced: "half
x-custom-key: kept`)

	assert.Equal(t, []string{"name", "description", "license", "empty", "unbalanced", "x-custom-key"}, fields.Keys())
	assert.Equal(t, "my-skill", fields.String("name"))
	assert.Equal(t, "Single quoted", fields.String("description"))
	assert.Equal(t, "MIT", fields.String("license"))
	assert.Equal(t, "\"half", fields.String("unbalanced"))
	assert.Equal(t, "kept", fields.String("x-custom-key"))

	empty, ok := fields.Get("empty")
	require.True(t, ok)
	assert.True(t, empty.IsScalar())
	assert.Equal(t, "", empty.String())
}

func TestParseBlockMultiline(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		key       string
		expected  string
		nextKey   string
		nextValue string
	}{
		{
			name:      "folded",
			block:     "description: >\n  First line\n  second line\nname: x",
			key:       "description",
			expected:  "First line second line",
			nextKey:   "name",
			nextValue: "x",
		},
		{
			name:     "folded strip",
			block:    "description: >-\n  Only line",
			key:      "description",
			expected: "Only line",
		},
		{
			name:      "literal is space joined",
			block:     "description: |\n  one\n\n  two\nlicense: MIT",
			key:       "description",
			expected:  "one two",
			nextKey:   "license",
			nextValue: "MIT",
		},
		{
			name:     "unindented text without key syntax continues",
			block:    "description: |-\n  one\nnot a key line\n  two",
			key:      "description",
			expected: "one not a key line two",
		},
		{
			name:      "immediately terminated",
			block:     "description: >\nname: x",
			key:       "description",
			expected:  "",
			nextKey:   "name",
			nextValue: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseBlock(tt.block)
			assert.Equal(t, tt.expected, fields.String(tt.key))
			if tt.nextKey != "" {
				assert.Equal(t, tt.nextValue, fields.String(tt.nextKey))
			}
		})
	}
}

func TestParseBlockNested(t *testing.T) {
	fields := ParseBlock(`name: beta
metadata:
  author: test
  version: "1.0"
  owners:
    - alice
    - 'bob'
tags:
- one
- two
description: after`)

	metadata, ok := fields.Get("metadata")
	require.True(t, ok)
	assert.Equal(t, Mapping, metadata.Kind)

	meta := metadata.Map()
	assert.Equal(t, []string{"author", "version", "owners"}, meta.Keys())
	assert.Equal(t, "test", meta.String("author"))
	assert.Equal(t, "1.0", meta.String("version"))

	owners, ok := meta.Get("owners")
	require.True(t, ok)
	assert.Equal(t, Sequence, owners.Kind)
	require.Len(t, owners.Items(), 2)
	assert.Equal(t, "alice", owners.Items()[0].String())
	assert.Equal(t, "bob", owners.Items()[1].String())

	tags, ok := fields.Get("tags")
	require.True(t, ok)
	assert.Equal(t, Sequence, tags.Kind)
	assert.Len(t, tags.Items(), 2)

	assert.Equal(t, "after", fields.String("description"))
}

func TestParseBlockDuplicateKeys(t *testing.T) {
	fields := ParseBlock("name: first\nlicense: MIT\nname: second")
	assert.Equal(t, []string{"name", "license"}, fields.Keys())
	assert.Equal(t, "second", fields.String("name"))
}

func TestParseBlockTrailingComments(t *testing.T) {
	fields := ParseBlock(`name: alpha # note
description: "Quoted # kept" # dropped
license: 'MIT'	# tab before comment
homepage: example.com/#anchor
metadata: # nested follows
  author: txnlab # who
tags:
  - one # first
  - "two # kept"`)

	assert.Equal(t, "alpha", fields.String("name"))
	assert.Equal(t, "Quoted # kept", fields.String("description"))
	assert.Equal(t, "MIT", fields.String("license"))
	assert.Equal(t, "example.com/#anchor", fields.String("homepage"))

	metadata, ok := fields.Get("metadata")
	require.True(t, ok)
	assert.Equal(t, Mapping, metadata.Kind)
	assert.Equal(t, "txnlab", metadata.Map().String("author"))

	tags, ok := fields.Get("tags")
	require.True(t, ok)
	require.Len(t, tags.Items(), 2)
	assert.Equal(t, "one", tags.Items()[0].String())
	assert.Equal(t, "two # kept", tags.Items()[1].String())
}

func TestParseBlockIgnoresNoise(t *testing.T) {
	fields := ParseBlock("# comment\n  stray indented line\nname: x\n\n")
	assert.Equal(t, []string{"name"}, fields.Keys())
}

func TestValueAccessors(t *testing.T) {
	scalar := ScalarValue("v")
	assert.Empty(t, scalar.Items())
	assert.Equal(t, 0, scalar.Map().Len())
	assert.Equal(t, "scalar", scalar.Kind.String())

	seq := SequenceValue(ScalarValue("a"))
	assert.Equal(t, "", seq.String())
	assert.False(t, seq.IsScalar())
	assert.Equal(t, "sequence", seq.Kind.String())

	mapping := MappingValue(ParseBlock("k: v"))
	assert.Equal(t, "", mapping.String())
	assert.Equal(t, "mapping", mapping.Kind.String())
	assert.True(t, mapping.Map().Has("k"))
}
