package core

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modpack-resolver/internal/types"
)

func validPackage() types.DeclarativePackage {
	return types.DeclarativePackage{
		Properties: types.PackageProperties{
			ContentVersions: []string{"1.0.0", "1.1.0"},
			Features:        []string{"shaders", "sounds"},
			DefaultFeatures: []string{"sounds"},
		},
		Relations: types.DeclarativeRelations{
			Dependencies: []string{"base-lib@1.0.0+"},
			Conflicts:    []string{"rival"},
			Compats:      [][]string{{"terrain", "terrain-fixes"}},
		},
	}
}

func TestValidateAcceptsValidPackage(t *testing.T) {
	err := NewPackageValidator().Validate(context.Background(), "my-pack", validPackage())
	require.NoError(t, err)
}

func TestValidateRejectsBadID(t *testing.T) {
	tests := []struct {
		name string
		id   types.PackageID
	}{
		{"uppercase", "MyPack"},
		{"underscore", "my_pack"},
		{"too long", "a-very-long-package-id-that-goes-over-the-limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPackageValidator().Validate(context.Background(), tt.id, validPackage())
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestValidateRejectsDuplicateVersions(t *testing.T) {
	pkg := validPackage()
	pkg.Properties.ContentVersions = []string{"1.0.0", "1.0.0"}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestValidateRejectsEmptyVersion(t *testing.T) {
	pkg := validPackage()
	pkg.Properties.ContentVersions = []string{"1.0.0", " "}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content version")
}

func TestValidateRejectsUnknownDefaultFeature(t *testing.T) {
	pkg := validPackage()
	pkg.Properties.DefaultFeatures = []string{"ghost-feature"}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost-feature")
}

func TestValidateRejectsSelfRelation(t *testing.T) {
	pkg := validPackage()
	pkg.Relations.Dependencies = []string{"my-pack"}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not relate to itself")
}

func TestValidateRejectsInvalidRelationTarget(t *testing.T) {
	pkg := validPackage()
	pkg.Relations.Bundled = []string{"Bad_Target"}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid relation target")
}

func TestValidateRejectsMalformedCompat(t *testing.T) {
	pkg := validPackage()
	pkg.Relations.Compats = [][]string{{"only-one"}}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly two packages")
}

func TestValidateRejectsEmptyRule(t *testing.T) {
	pkg := validPackage()
	pkg.Rules = []types.DeclarativeRule{{
		Conditions: []types.DeclarativeConditionSet{{Side: types.SideClient}},
	}}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no effect")
}

func TestValidateChecksRuleRelations(t *testing.T) {
	pkg := validPackage()
	pkg.Rules = []types.DeclarativeRule{{
		Relations: types.DeclarativeRelations{Dependencies: []string{"my-pack"}},
	}}
	err := NewPackageValidator().Validate(context.Background(), "my-pack", pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not relate to itself")
}
