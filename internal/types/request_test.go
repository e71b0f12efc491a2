package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		raw     string
		id      PackageID
		pattern string
	}{
		{"terrain", "terrain", "*"},
		{"terrain@1.2.0", "terrain", "1.2.0"},
		{"terrain@*", "terrain", "*"},
		{"terrain@latest", "terrain", "latest"},
		{"terrain@1.0..2.0", "terrain", "1.0..2.0"},
		{"terrain@", "terrain", "*"},
	}

	for _, tt := range tests {
		req := ParseRequest(tt.raw, RequestSource{Kind: SourceUserRequire})
		assert.Equal(t, tt.id, req.ID, "id for %q", tt.raw)
		assert.Equal(t, tt.pattern, req.ContentVersion.String(), "pattern for %q", tt.raw)
	}
}

func TestSameAsIgnoresVersionAndSource(t *testing.T) {
	a := ParseRequest("pack@1.0", RequestSource{Kind: SourceUserRequire})
	b := ParseRequest("pack@2.0", RequestSource{Kind: SourceRepository})
	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(ParseRequest("other", RequestSource{})))
	assert.False(t, a.SameAs(nil))
}

func TestDebugSources(t *testing.T) {
	root := NewRequest("base", RequestSource{Kind: SourceUserRequire}, AnyVersion())
	dep := NewRequest("lib", RequestSource{Kind: SourceDependency, Parent: root}, AnyVersion())
	bundled := NewRequest("addon", RequestSource{Kind: SourceBundled, Parent: dep}, AnyVersion())
	refused := NewRequest("rival", RequestSource{Kind: SourceRefused, Parent: root}, AnyVersion())
	repo := NewRequest("extra", RequestSource{Kind: SourceRepository}, AnyVersion())

	assert.Equal(t, "base", root.DebugSources())
	assert.Equal(t, "base -> lib", dep.DebugSources())
	assert.Equal(t, "base -> lib => addon", bundled.DebugSources())
	assert.Equal(t, "base =X=> rival", refused.DebugSources())
	assert.Equal(t, "Repository -> extra", repo.DebugSources())
}

func TestIsUserBundled(t *testing.T) {
	root := NewRequest("base", RequestSource{Kind: SourceUserRequire}, AnyVersion())
	bundled := NewRequest("addon", RequestSource{Kind: SourceBundled, Parent: root}, AnyVersion())
	nested := NewRequest("inner", RequestSource{Kind: SourceBundled, Parent: bundled}, AnyVersion())
	dep := NewRequest("lib", RequestSource{Kind: SourceDependency, Parent: root}, AnyVersion())
	depBundled := NewRequest("leaf", RequestSource{Kind: SourceBundled, Parent: dep}, AnyVersion())

	assert.True(t, root.Source.IsUserBundled())
	assert.True(t, bundled.Source.IsUserBundled())
	assert.True(t, nested.Source.IsUserBundled())
	assert.False(t, dep.Source.IsUserBundled())
	assert.False(t, depBundled.Source.IsUserBundled())
}

func TestRequestLess(t *testing.T) {
	a := NewRequest("alpha", RequestSource{Kind: SourceDependency}, AnyVersion())
	b := NewRequest("beta", RequestSource{Kind: SourceUserRequire}, AnyVersion())
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))

	// Same ID orders by source kind, user requests first.
	userA := NewRequest("alpha", RequestSource{Kind: SourceUserRequire}, AnyVersion())
	require.True(t, userA.Less(a))
}

func TestIsValidPackageID(t *testing.T) {
	tests := []struct {
		id    PackageID
		valid bool
	}{
		{"terrain", true},
		{"terrain-2", true},
		{"a", true},
		{"", false},
		{"Terrain", false},
		{"terra_in", false},
		{"terrain!", false},
		{PackageID("a-very-long-package-id-that-goes-over-the-limit"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidPackageID(tt.id), "id %q", tt.id)
	}
}
