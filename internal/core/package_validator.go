package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modpack-resolver/internal/types"
)

// PackageValidator checks declarative package definitions before they
// enter a repository.
type PackageValidator struct{}

func NewPackageValidator() PackageValidator {
	return PackageValidator{}
}

// Validate checks the definition of the package with the given ID.
func (v PackageValidator) Validate(ctx context.Context, id types.PackageID, pkg types.DeclarativePackage) error {
	assert.NotEmpty(ctx, string(id), "package id must be set")
	if !types.IsValidPackageID(id) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package id '%s': lowercase letters, digits and dashes only, at most %d characters", id, types.MaxPackageIDLength))
	}

	if err := validateContentVersions(ctx, id, pkg.Properties.ContentVersions); err != nil {
		return err
	}
	if err := validateFeatures(pkg.Properties); err != nil {
		return err
	}
	if err := validateRelations(id, pkg.Relations); err != nil {
		return err
	}
	for i, rule := range pkg.Rules {
		if rule.Relations.IsEmpty() && len(rule.Notices) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("conditional rule %d of package '%s' has no effect", i, id))
		}
		if err := validateRelations(id, rule.Relations); err != nil {
			return err
		}
	}

	log.Ctx(ctx).Debug().Str("package", string(id)).Msg("package definition validated")
	return nil
}

func validateContentVersions(ctx context.Context, id types.PackageID, versions []string) error {
	seen := map[string]struct{}{}
	for _, version := range versions {
		if strings.TrimSpace(version) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package '%s' declares an empty content version", id))
		}
		if _, ok := seen[version]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package '%s' declares content version '%s' twice", id, version))
		}
		seen[version] = struct{}{}
	}

	// The declared order is canonical for pattern matching. Warn when
	// it disagrees with semantic version order, which usually means a
	// misplaced entry.
	cache := newVersionCache()
	for i := 1; i < len(versions); i++ {
		if cache.compare(versions[i-1], versions[i]) > 0 {
			log.Ctx(ctx).Warn().
				Str("package", string(id)).
				Str("before", versions[i-1]).
				Str("after", versions[i]).
				Msg("content versions are not in ascending semantic order")
		}
	}
	return nil
}

func validateFeatures(props types.PackageProperties) error {
	known := map[string]struct{}{}
	for _, feature := range props.Features {
		known[feature] = struct{}{}
	}
	for _, feature := range props.DefaultFeatures {
		if _, ok := known[feature]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("default feature '%s' is not declared in features", feature))
		}
	}
	return nil
}

func validateRelations(id types.PackageID, relations types.DeclarativeRelations) error {
	lists := [][]string{
		relations.Dependencies,
		relations.ExplicitDependencies,
		relations.Conflicts,
		relations.Extensions,
		relations.Bundled,
	}
	for _, list := range lists {
		for _, entry := range list {
			if err := validateRelationTarget(id, entry); err != nil {
				return err
			}
		}
	}
	for _, pair := range relations.Compats {
		if len(pair) != 2 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("compat entries of package '%s' must name exactly two packages", id))
		}
		for _, entry := range pair {
			if err := validateRelationTarget(id, entry); err != nil {
				return err
			}
		}
	}
	for _, rec := range relations.Recommendations {
		if err := validateRelationTarget(id, rec.Value); err != nil {
			return err
		}
	}
	return nil
}

func validateRelationTarget(id types.PackageID, entry string) error {
	req := types.ParseRequest(entry, types.RequestSource{Kind: types.SourceRepository})
	if !types.IsValidPackageID(req.ID) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package '%s' names invalid relation target '%s'", id, entry))
	}
	if req.ID == id {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package '%s' must not relate to itself", id))
	}
	return nil
}
