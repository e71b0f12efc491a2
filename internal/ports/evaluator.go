package ports

import (
	"context"

	"modpack-resolver/internal/types"
)

// CommonInput carries evaluator-specific shared state (caches, paths,
// repository handles) passed unchanged to every evaluator call. The
// resolver never inspects it.
type CommonInput interface{}

// PackageEvaluator produces the relationship facts the resolver
// consumes. Implementations may hit disk or network; these are the only
// suspension points during a resolution run.
type PackageEvaluator interface {
	// GetPackageProperties returns the package's properties, including
	// its valid content versions.
	GetPackageProperties(ctx context.Context, req *types.PkgRequest, common CommonInput) (types.PackageProperties, error)

	// EvalPackageRelations evaluates the package's relationships under
	// the given input.
	EvalPackageRelations(ctx context.Context, req *types.PkgRequest, input types.EvalInput, common CommonInput) (types.RelationSet, error)
}

// ConfiguredPackage is a user-requested package together with its
// per-package configuration.
type ConfiguredPackage interface {
	// Request returns the package request this configuration is for.
	Request() *types.PkgRequest

	// OverrideEvalInput applies the per-package configuration on top of
	// the constant evaluation input. Configured values take precedence.
	OverrideEvalInput(props types.PackageProperties, input *types.EvalInput) error
}
