package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"modpack-resolver/internal/types"
)

func sampleReport() types.ResolutionReport {
	return types.ResolutionReport{
		GameVersion: "1.21",
		Packages: []types.ResolvedPackage{
			{ID: "terrain", RequiredBy: "terrain"},
			{ID: "base-lib", RequiredBy: "terrain -> base-lib"},
		},
		UnfulfilledRecommendations: []types.UnfulfilledRecommendation{
			{ID: "nicety"},
		},
	}
}

func TestWriteReportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, NewOutputFileAdapter().WriteReport(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got types.ResolutionReport
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, sampleReport(), got)
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, NewOutputFileAdapter().WriteReport(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got types.ResolutionReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleReport(), got)
}

func TestWriteReportCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "report.yaml")
	require.NoError(t, NewOutputFileAdapter().WriteReport(path, sampleReport()))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteReportEmptyPath(t *testing.T) {
	err := NewOutputFileAdapter().WriteReport("", sampleReport())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
