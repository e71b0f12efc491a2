package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modpack-resolver/internal/types"
)

func writeTestFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// fixture builds a small repository and a profile requesting it.
func fixture(t *testing.T) (profilePath string, packagesDir string) {
	t.Helper()
	packagesDir = t.TempDir()
	writeTestFile(t, packagesDir, "terrain.yaml", `
properties:
  content_versions: ["1.0", "2.0"]
relations:
  dependencies: ["base-lib"]
  recommendations:
    - value: nicety
`)
	writeTestFile(t, packagesDir, "base-lib.yaml", `
properties:
  content_versions: ["0.9", "1.0"]
`)
	writeTestFile(t, packagesDir, "nicety.yaml", "{}")

	profileDir := t.TempDir()
	profilePath = filepath.Join(profileDir, "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
game_version: "1.21"
packages:
  - id: terrain
`), 0644))
	return profilePath, packagesDir
}

func TestServiceResolve(t *testing.T) {
	profilePath, packagesDir := fixture(t)
	service := NewService()

	result, err := service.Resolve(context.Background(), ResolveRequest{
		ProfilePath: profilePath,
		PackagesDir: packagesDir,
	})
	require.NoError(t, err)

	assert.Equal(t, "1.21", result.Report.GameVersion)
	assert.NotEmpty(t, result.Report.GeneratedAt)
	require.Len(t, result.Report.Packages, 2)
	assert.Equal(t, types.PackageID("terrain"), result.Report.Packages[0].ID)
	assert.Equal(t, types.PackageID("base-lib"), result.Report.Packages[1].ID)
	assert.Equal(t, "terrain -> base-lib", result.Report.Packages[1].RequiredBy)

	require.Len(t, result.Report.UnfulfilledRecommendations, 1)
	assert.Equal(t, types.PackageID("nicety"), result.Report.UnfulfilledRecommendations[0].ID)
}

func TestServiceResolveWritesReport(t *testing.T) {
	profilePath, packagesDir := fixture(t)
	outputPath := filepath.Join(t.TempDir(), "report.yaml")
	service := NewService()

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ProfilePath: profilePath,
		PackagesDir: packagesDir,
		OutputPath:  outputPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "terrain")
}

func TestServiceResolveDuplicateProfileEntries(t *testing.T) {
	_, packagesDir := fixture(t)
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
game_version: "1.21"
packages:
  - id: terrain
  - id: terrain
`), 0644))
	service := NewService()

	result, err := service.Resolve(context.Background(), ResolveRequest{
		ProfilePath: profilePath,
		PackagesDir: packagesDir,
	})
	require.NoError(t, err)

	count := 0
	for _, pkg := range result.Report.Packages {
		if pkg.ID == "terrain" {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicate profile entries must not duplicate the report")
}

func TestServiceResolveMissingPackagesDir(t *testing.T) {
	profilePath, _ := fixture(t)
	service := NewService()

	_, err := service.Resolve(context.Background(), ResolveRequest{ProfilePath: profilePath})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestServiceResolveMissingDependency(t *testing.T) {
	packagesDir := t.TempDir()
	writeTestFile(t, packagesDir, "terrain.yaml", `
relations:
  dependencies: ["ghost"]
`)
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
packages:
  - id: terrain
`), 0644))
	service := NewService()

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ProfilePath: profilePath,
		PackagesDir: packagesDir,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "In package 'terrain'")
}

func TestServiceValidate(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "terrain.yaml", `
properties:
  content_versions: ["1.0"]
relations:
  dependencies: ["base-lib"]
`)
	service := NewService()
	require.NoError(t, service.Validate(context.Background(), ValidateRequest{
		Path: filepath.Join(dir, "terrain.yaml"),
	}))
}

func TestServiceValidateRejectsSelfDependency(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "terrain.yaml", `
relations:
  dependencies: ["terrain"]
`)
	service := NewService()
	err := service.Validate(context.Background(), ValidateRequest{
		Path: filepath.Join(dir, "terrain.yaml"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not relate to itself")
}

func TestServiceInspect(t *testing.T) {
	_, packagesDir := fixture(t)
	service := NewService()

	result, err := service.Inspect(context.Background(), InspectRequest{
		PackagesDir: packagesDir,
		Package:     "terrain",
		GameVersion: "1.21",
	})
	require.NoError(t, err)
	assert.Equal(t, types.PackageID("terrain"), result.ID)
	assert.Equal(t, []string{"2.0", "1.0"}, result.NewestFirst)
	require.Len(t, result.Relations.Dependencies, 1)
	assert.Equal(t, "base-lib", result.Relations.Dependencies[0].Value)
}

func TestServiceInspectMissingPackageID(t *testing.T) {
	service := NewService()
	_, err := service.Inspect(context.Background(), InspectRequest{PackagesDir: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
