package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"modpack-resolver/internal/adapters"
	"modpack-resolver/internal/core"
	"modpack-resolver/internal/types"
)

// Inspect evaluates one package under the given input and returns its
// properties and relations without running a resolution.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	if req.Package == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package id must be set")
	}
	source := adapters.NewPackageDirSource(req.PackagesDir)
	evaluator := adapters.NewDeclarativeEvaluator(source)

	pkgReq := types.ParseRequest(req.Package, types.RequestSource{Kind: types.SourceRepository})
	props, err := evaluator.GetPackageProperties(ctx, pkgReq, nil)
	if err != nil {
		return InspectResult{}, err
	}

	input := types.EvalInput{
		GameVersion: req.GameVersion,
		Side:        req.Side,
		Stability:   req.Stability,
		Features:    req.Features,
	}
	if input.Stability == "" {
		input.Stability = types.StabilityStable
	}
	relations, err := evaluator.EvalPackageRelations(ctx, pkgReq, input, nil)
	if err != nil {
		return InspectResult{}, err
	}

	ascending := core.SortContentVersions(props.ContentVersions)
	newestFirst := make([]string, 0, len(ascending))
	for i := len(ascending) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, ascending[i])
	}

	return InspectResult{
		ID:          pkgReq.ID,
		Properties:  props,
		NewestFirst: newestFirst,
		Relations:   relations,
	}, nil
}
