package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema()
	require.NoError(t, err)
	return s
}

func TestChoices(t *testing.T) {
	s := testSchema(t)

	tests := []struct {
		prop      string
		deep      bool
		first     string
		contains  []string
		withOther bool
	}{
		{prop: "output", deep: true, first: "chunkFilename", contains: []string{"filename", "publicPath"}, withOther: true},
		{prop: "module", deep: true, contains: []string{"loaders", "preLoaders"}, withOther: true},
		{prop: "devtool", deep: true, first: "false", contains: []string{"source-map", "eval"}},
		{prop: "watch", deep: true, first: "true", contains: []string{"false"}, withOther: true},
		{prop: "stats", deep: true, first: "assets", contains: []string{"colors"}, withOther: true},
		{prop: "performance", deep: true, first: "hints", withOther: true},
		{prop: "target", deep: true, first: "web", contains: []string{"node"}, withOther: true},
		{prop: "devServer", deep: true, first: "compress", contains: []string{"port"}, withOther: true},
		{prop: "entry"},
		{prop: "plugins"},
		{prop: "context"},
		{prop: "externals"},
	}

	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			c := s.Choices(tt.prop)
			assert.Equal(t, tt.prop, c.Property)
			assert.Equal(t, tt.deep, c.Deep())
			if !tt.deep {
				assert.Empty(t, c.Options)
				return
			}
			if tt.first != "" {
				assert.Equal(t, tt.first, c.Options[0])
			}
			for _, want := range tt.contains {
				assert.Contains(t, c.Options, want)
			}
			if tt.withOther {
				assert.Equal(t, OtherChoice, c.Options[len(c.Options)-1])
			} else {
				assert.NotContains(t, c.Options, OtherChoice)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	s := testSchema(t)

	warnings, err := s.Validate([]byte(`{"entry": "./a.js", "output": {"filename": "b.js"}, "devtool": false}`))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	warnings, err = s.Validate([]byte(`{"devtool": 3, "watch": "yes"}`))
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	joined := strings.Join(warnings, "\n")
	assert.Contains(t, joined, "/devtool")
	assert.Contains(t, joined, "/watch")

	_, err = s.Validate([]byte(`{`))
	assert.Error(t, err)
}

func TestProperties(t *testing.T) {
	props := Properties()
	assert.Equal(t, "context", props[0])
	assert.True(t, IsProperty("devServer"))
	assert.False(t, IsProperty("nope"))

	props[0] = "changed"
	assert.Equal(t, "context", Properties()[0])
}
