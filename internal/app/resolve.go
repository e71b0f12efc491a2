package app

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modpack-resolver/internal/adapters"
	"modpack-resolver/internal/core"
	"modpack-resolver/internal/types"
)

// Resolve loads a profile, resolves its package set against a package
// directory and optionally writes the report.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	if req.PackagesDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("packages directory must be set")
	}
	profile, err := adapters.LoadProfile(req.ProfilePath)
	if err != nil {
		return ResolveResult{}, err
	}

	source := adapters.NewPackageDirSource(req.PackagesDir)
	evaluator := adapters.NewDeclarativeEvaluator(source)

	result, err := core.Resolve(ctx, profile.Packages, evaluator, profile.Input, nil)
	if err != nil {
		return ResolveResult{}, err
	}

	report := types.ResolutionReport{
		GeneratedAt: s.Clock().UTC().Format(time.RFC3339),
		GameVersion: profile.Input.GameVersion,
		Packages:    []types.ResolvedPackage{},
	}
	for _, pkg := range result.Packages {
		report.Packages = append(report.Packages, types.ResolvedPackage{
			ID:         pkg.ID,
			RequiredBy: pkg.DebugSources(),
		})
	}
	for _, rec := range result.UnfulfilledRecommendations {
		report.UnfulfilledRecommendations = append(report.UnfulfilledRecommendations, types.UnfulfilledRecommendation{
			ID:     rec.Req.ID,
			Invert: rec.Invert,
		})
	}

	if req.OutputPath != "" {
		if err := s.Output.WriteReport(req.OutputPath, report); err != nil {
			return ResolveResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Int("packages", len(report.Packages)).
		Int("unfulfilled_recommendations", len(report.UnfulfilledRecommendations)).
		Msg("resolution finished")
	return ResolveResult{Report: report}, nil
}
