package adapters

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modpack-resolver/internal/ports"
	"modpack-resolver/internal/types"
)

// DeclarativeEvaluator evaluates declarative package definitions loaded
// through a PackageSource. Definitions are cached per evaluator, so one
// evaluator instance sees a consistent repository snapshot for the
// whole resolution run.
type DeclarativeEvaluator struct {
	source ports.PackageSource
	cache  map[types.PackageID]types.DeclarativePackage
}

func NewDeclarativeEvaluator(source ports.PackageSource) *DeclarativeEvaluator {
	return &DeclarativeEvaluator{
		source: source,
		cache:  map[types.PackageID]types.DeclarativePackage{},
	}
}

func (e *DeclarativeEvaluator) GetPackageProperties(ctx context.Context, req *types.PkgRequest, _ ports.CommonInput) (types.PackageProperties, error) {
	pkg, err := e.load(ctx, req.ID)
	if err != nil {
		return types.PackageProperties{}, err
	}
	return pkg.Properties, nil
}

func (e *DeclarativeEvaluator) EvalPackageRelations(ctx context.Context, req *types.PkgRequest, input types.EvalInput, _ ports.CommonInput) (types.RelationSet, error) {
	pkg, err := e.load(ctx, req.ID)
	if err != nil {
		return types.RelationSet{}, err
	}

	relations := pkg.Relations
	for _, rule := range pkg.Rules {
		if !ruleApplies(rule, input) {
			continue
		}
		relations.Merge(rule.Relations)
		for _, notice := range rule.Notices {
			log.Ctx(ctx).Info().
				Str("package", string(req.ID)).
				Msg(notice)
		}
	}
	for _, pair := range relations.Compats {
		if len(pair) != 2 {
			log.Ctx(ctx).Warn().
				Str("package", string(req.ID)).
				Int("entries", len(pair)).
				Msg("compat entry does not name exactly two packages, skipping")
		}
	}
	return relations.ToRelationSet(), nil
}

func (e *DeclarativeEvaluator) load(ctx context.Context, id types.PackageID) (types.DeclarativePackage, error) {
	if pkg, ok := e.cache[id]; ok {
		return pkg, nil
	}
	pkg, err := e.source.LoadPackage(ctx, id)
	if err != nil {
		return types.DeclarativePackage{}, err
	}
	e.cache[id] = pkg
	return pkg, nil
}

// ruleApplies checks a conditional rule against the evaluation input.
// Every condition set must pass; within a set, every specified field
// must match.
func ruleApplies(rule types.DeclarativeRule, input types.EvalInput) bool {
	for _, set := range rule.Conditions {
		if !conditionSetMatches(set, input) {
			return false
		}
	}
	return true
}

func conditionSetMatches(set types.DeclarativeConditionSet, input types.EvalInput) bool {
	if set.Side != types.SideAny && set.Side != input.Side {
		return false
	}
	if set.Stability != "" && set.Stability != input.Stability {
		return false
	}
	if len(set.GameVersions) > 0 && !matchesGameVersion(set.GameVersions, input.GameVersion) {
		return false
	}
	for _, feature := range set.Features {
		if !containsString(input.Features, feature) {
			return false
		}
	}
	return true
}

func matchesGameVersion(patterns []string, version string) bool {
	for _, pattern := range patterns {
		if pattern == "*" || pattern == version {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// ConfiguredPkg is a user-requested package with its per-package
// configuration from the profile.
type ConfiguredPkg struct {
	Req       *types.PkgRequest
	Features  []string
	Stability types.Stability
	Side      types.Side
}

func (c ConfiguredPkg) Request() *types.PkgRequest {
	return c.Req
}

// OverrideEvalInput applies the package's configured features and
// stability on top of the constant input. Configured features must be
// declared by the package.
func (c ConfiguredPkg) OverrideEvalInput(props types.PackageProperties, input *types.EvalInput) error {
	if c.Stability != "" {
		input.Stability = c.Stability
	}
	if c.Side != types.SideAny {
		input.Side = c.Side
	}
	if c.Features == nil {
		if len(props.DefaultFeatures) > 0 {
			input.Features = append([]string(nil), props.DefaultFeatures...)
		}
		return nil
	}
	for _, feature := range c.Features {
		if !containsString(props.Features, feature) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("feature '%s' is not declared by package '%s'", feature, c.Req))
		}
	}
	input.Features = append([]string(nil), c.Features...)
	return nil
}

var _ ports.PackageEvaluator = (*DeclarativeEvaluator)(nil)
var _ ports.ConfiguredPackage = ConfiguredPkg{}
