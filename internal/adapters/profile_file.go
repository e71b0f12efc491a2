package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"modpack-resolver/internal/ports"
	"modpack-resolver/internal/types"
)

// profileFile is the on-disk profile format.
type profileFile struct {
	GameVersion string                `yaml:"game_version"`
	Side        types.Side            `yaml:"side,omitempty"`
	Stability   types.Stability       `yaml:"stability,omitempty"`
	Features    []string              `yaml:"features,omitempty"`
	Packages    []profilePackageEntry `yaml:"packages"`
}

type profilePackageEntry struct {
	ID        string          `yaml:"id"`
	Features  []string        `yaml:"features,omitempty"`
	Stability types.Stability `yaml:"stability,omitempty"`
	Side      types.Side      `yaml:"side,omitempty"`
}

// Profile is a loaded user profile: the constant evaluation input plus
// the configured package requests.
type Profile struct {
	Input    types.EvalInput
	Packages []ports.ConfiguredPackage
}

// LoadProfile reads a profile YAML file. Package IDs may carry an
// "@pattern" suffix constraining content versions.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("profile file not found").
			WithCause(err)
	}
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse profile yaml").
			WithCause(err)
	}
	if len(file.Packages) == 0 {
		return Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("profile names no packages")
	}

	profile := Profile{
		Input: types.EvalInput{
			GameVersion: file.GameVersion,
			Side:        file.Side,
			Stability:   file.Stability,
			Features:    file.Features,
		},
	}
	if profile.Input.Stability == "" {
		profile.Input.Stability = types.StabilityStable
	}
	for _, entry := range file.Packages {
		if entry.ID == "" {
			return Profile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("profile package entry is missing an id")
		}
		req := types.ParseRequest(entry.ID, types.RequestSource{Kind: types.SourceUserRequire})
		profile.Packages = append(profile.Packages, ConfiguredPkg{
			Req:       req,
			Features:  entry.Features,
			Stability: entry.Stability,
			Side:      entry.Side,
		})
	}
	return profile, nil
}
