package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"modpack-resolver/internal/ports"
	"modpack-resolver/internal/types"
)

// packageFileExtensions in lookup order.
var packageFileExtensions = []string{".json", ".yaml", ".yml"}

// PackageDirSource loads declarative package definitions from a
// directory of <id>.json or <id>.yaml files.
type PackageDirSource struct {
	Dir string
}

func NewPackageDirSource(dir string) PackageDirSource {
	return PackageDirSource{Dir: dir}
}

func (s PackageDirSource) LoadPackage(_ context.Context, id types.PackageID) (types.DeclarativePackage, error) {
	if s.Dir == "" {
		return types.DeclarativePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package directory is empty")
	}
	for _, ext := range packageFileExtensions {
		path := filepath.Join(s.Dir, string(id)+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadPackageFile(path)
	}
	return types.DeclarativePackage{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no definition found for package '%s'", id))
}

func (s PackageDirSource) ListPackages(_ context.Context) ([]types.PackageID, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package directory not readable").
			WithCause(err)
	}
	seen := map[types.PackageID]struct{}{}
	var out []types.PackageID
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !containsString(packageFileExtensions, ext) {
			continue
		}
		id := types.PackageID(strings.TrimSuffix(entry.Name(), ext))
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// LoadPackageFile reads one declarative package definition, JSON or
// YAML by extension.
func LoadPackageFile(path string) (types.DeclarativePackage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DeclarativePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package definition not found").
			WithCause(err)
	}
	var pkg types.DeclarativePackage
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &pkg); err != nil {
			return types.DeclarativePackage{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse package definition json").
				WithCause(err)
		}
		return pkg, nil
	}
	if err := yaml.Unmarshal(data, &pkg); err != nil {
		return types.DeclarativePackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package definition yaml").
			WithCause(err)
	}
	return pkg, nil
}

var _ ports.PackageSource = PackageDirSource{}
