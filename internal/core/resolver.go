package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modpack-resolver/internal/ports"
	"modpack-resolver/internal/types"
)

type constraintKind string

const (
	constraintRequire     constraintKind = "require"
	constraintUserRequire constraintKind = "user_require"
	constraintBundle      constraintKind = "bundle"
	constraintRefuse      constraintKind = "refuse"
	constraintRecommend   constraintKind = "recommend"
	constraintCompat      constraintKind = "compat"
	constraintExtend      constraintKind = "extend"
)

// constraint is one typed assertion in the fact store. Requirement
// constraints additionally track the package's canonical content
// versions and the running intersection of every version pattern seen
// for it. The version fields stay unseeded until the package's
// properties are first fetched.
type constraint struct {
	kind   constraintKind
	req    *types.PkgRequest
	compat *types.PkgRequest
	invert bool

	versions []string
	allowed  []string
	seeded   bool
	// pending holds version patterns from duplicate user requests for
	// the same package, applied once the constraint is seeded.
	pending []types.VersionPattern
}

func (c *constraint) isRequirement() bool {
	switch c.kind {
	case constraintRequire, constraintUserRequire, constraintBundle:
		return true
	default:
		return false
	}
}

// task is a unit of pending work: evaluate one package's relations.
type task struct {
	req *types.PkgRequest
	// config is set only for user-requested packages.
	config ports.ConfiguredPackage
}

// resolver owns the FIFO task queue and the constraint list for one
// resolution run. It is created fresh per Resolve call and never shared.
type resolver struct {
	tasks         []task
	constraints   []*constraint
	constantInput types.EvalInput
}

func (r *resolver) push(t task) {
	r.tasks = append(r.tasks, t)
}

// requirementFor returns the requirement constraint naming the package,
// if any. At most one exists per package ID.
func (r *resolver) requirementFor(id types.PackageID) *constraint {
	for _, c := range r.constraints {
		if c.isRequirement() && c.req.ID == id {
			return c
		}
	}
	return nil
}

func (r *resolver) isRequired(req *types.PkgRequest) bool {
	return r.requirementFor(req.ID) != nil
}

// isUserRequired reports whether the package was asked for by the user,
// directly or through a chain of bundles rooted at a user request.
func (r *resolver) isUserRequired(req *types.PkgRequest) bool {
	for _, c := range r.constraints {
		if !c.req.SameAs(req) {
			continue
		}
		if c.kind == constraintUserRequire {
			return true
		}
		if c.kind == constraintBundle && c.req.Source.IsUserBundled() {
			return true
		}
	}
	return false
}

func (r *resolver) isRefused(req *types.PkgRequest) bool {
	for _, c := range r.constraints {
		if c.kind == constraintRefuse && c.req.SameAs(req) {
			return true
		}
	}
	return false
}

// getRefusers names every package refusing this one, falling back to
// "User-refused" when a refusal has no package source.
func (r *resolver) getRefusers(req *types.PkgRequest) []string {
	var out []string
	for _, c := range r.constraints {
		if c.kind != constraintRefuse || !c.req.SameAs(req) {
			continue
		}
		if source := c.req.Source.Parent; source != nil {
			out = append(out, string(source.ID))
		} else {
			out = append(out, "User-refused")
		}
	}
	return out
}

func (r *resolver) compatExists(check, compat *types.PkgRequest) bool {
	for _, c := range r.constraints {
		if c.kind == constraintCompat && c.req.SameAs(check) && c.compat.SameAs(compat) {
			return true
		}
	}
	return false
}

// removeRequireConstraint drops the requirement constraint naming the
// package, used when upgrading a Require to a Bundle.
func (r *resolver) removeRequireConstraint(req *types.PkgRequest) {
	for i, c := range r.constraints {
		if c.isRequirement() && c.req.SameAs(req) {
			r.constraints = append(r.constraints[:i], r.constraints[i+1:]...)
			return
		}
	}
}

// checkConstraints fails if the package is disallowed by an existing
// refusal.
func (r *resolver) checkConstraints(req *types.PkgRequest) error {
	if !r.isRefused(req) {
		return nil
	}
	refusers := r.getRefusers(req)
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("package '%s' is incompatible with existing packages %s", req, strings.Join(refusers, ", ")))
}

// seedRequirement fills in a requirement's version fields from the
// package's reported content versions, applying the request's own
// pattern. An empty result against a non-empty version list means the
// pattern admits nothing.
func (r *resolver) seedRequirement(c *constraint, props types.PackageProperties, pattern types.VersionPattern) error {
	c.versions = append([]string(nil), props.ContentVersions...)
	c.allowed = pattern.Matches(c.versions)
	for _, extra := range c.pending {
		c.allowed = intersect(c.allowed, extra.Matches(c.versions))
	}
	c.pending = nil
	c.seeded = true
	if len(c.versions) > 0 && len(c.allowed) == 0 {
		return overconstrainedError(c.req)
	}
	return nil
}

// ensureSeeded seeds a requirement constraint lazily, fetching the
// package's properties if they have not been seen yet.
func (r *resolver) ensureSeeded(ctx context.Context, c *constraint, evaluator ports.PackageEvaluator, common ports.CommonInput) error {
	if c.seeded {
		return nil
	}
	props, err := evaluator.GetPackageProperties(ctx, c.req, common)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg(fmt.Sprintf("failed to get properties of package '%s'", c.req)).
			WithCause(err)
	}
	return r.seedRequirement(c, props, c.req.ContentVersion)
}

// updateRequireConstraint creates or narrows the requirement for a
// package. A new requirement is seeded from the evaluator-reported
// content versions and its evaluation enqueued; an existing one has its
// allowed set intersected with the versions the new pattern matches,
// re-enqueueing evaluation when the set strictly shrank. Requirements
// with no version concept are left alone.
func (r *resolver) updateRequireConstraint(ctx context.Context, req *types.PkgRequest, evaluator ports.PackageEvaluator, common ports.CommonInput) error {
	c := r.requirementFor(req.ID)
	if c == nil {
		props, err := evaluator.GetPackageProperties(ctx, req, common)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg(fmt.Sprintf("failed to get properties of package '%s'", req)).
				WithCause(err)
		}
		c = &constraint{kind: constraintRequire, req: req}
		if err := r.seedRequirement(c, props, req.ContentVersion); err != nil {
			return err
		}
		r.constraints = append(r.constraints, c)
		r.push(task{req: req})
		return nil
	}

	if err := r.ensureSeeded(ctx, c, evaluator, common); err != nil {
		return err
	}
	if len(c.allowed) == 0 {
		// Package has no version concept; nothing to narrow.
		return nil
	}
	if req.ContentVersion.IsAny() {
		return nil
	}

	next := intersect(c.allowed, req.ContentVersion.Matches(c.versions))
	if len(next) == 0 {
		return overconstrainedError(c.req)
	}
	if len(next) < len(c.allowed) {
		c.allowed = next
		log.Ctx(ctx).Debug().
			Str("package", string(c.req.ID)).
			Int("allowed", len(next)).
			Msg("content versions narrowed, re-evaluating")
		r.push(task{req: c.req})
	}
	return nil
}

// checkCompats scans compat constraints and requires the compat side of
// every pair whose checked side has become required. Runs after each
// drained task until the outer loop stabilizes.
func (r *resolver) checkCompats(ctx context.Context, evaluator ports.PackageEvaluator, common ports.CommonInput) error {
	var pending []*constraint
	for _, c := range r.constraints {
		if c.kind == constraintCompat && r.isRequired(c.req) && !r.isRequired(c.compat) {
			pending = append(pending, c)
		}
	}
	for _, c := range pending {
		log.Ctx(ctx).Debug().
			Str("check", string(c.req.ID)).
			Str("compat", string(c.compat.ID)).
			Msg("compat constraint triggered")
		if err := r.updateRequireConstraint(ctx, c.compat, evaluator, common); err != nil {
			return packageContextError(c.compat, err)
		}
	}
	return nil
}

// collectPackages projects the constraint list into the final package
// set, in constraint order.
func (r *resolver) collectPackages() []*types.PkgRequest {
	var out []*types.PkgRequest
	for _, c := range r.constraints {
		if c.isRequirement() {
			out = append(out, c.req)
		}
	}
	return out
}

// RecommendedRequest is a recommendation the final package set does not
// honor.
type RecommendedRequest struct {
	Req    *types.PkgRequest
	Invert bool
}

// ResolutionResult is the outcome of a successful resolution run.
type ResolutionResult struct {
	// Packages is the complete set to install, one entry per package.
	Packages []*types.PkgRequest
	// UnfulfilledRecommendations are advisory only.
	UnfulfilledRecommendations []RecommendedRequest
}

// Resolve computes the full package set for the user-requested
// packages. It seeds one user requirement per input package, drains the
// task queue to a fixpoint and validates recommendations and
// extensions. The evaluator is the only collaborator that may perform
// I/O.
func Resolve(ctx context.Context, packages []ports.ConfiguredPackage, evaluator ports.PackageEvaluator, constantInput types.EvalInput, common ports.CommonInput) (ResolutionResult, error) {
	if evaluator == nil {
		return ResolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolve requires a package evaluator")
	}

	r := &resolver{constantInput: constantInput}

	sorted := append([]ports.ConfiguredPackage(nil), packages...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Request().ID < sorted[j].Request().ID
	})
	for _, config := range sorted {
		req := config.Request()
		// A second user entry for the same package narrows the existing
		// requirement instead of creating a duplicate.
		if existing := r.requirementFor(req.ID); existing != nil {
			if !req.ContentVersion.IsAny() {
				existing.pending = append(existing.pending, req.ContentVersion)
			}
			continue
		}
		r.constraints = append(r.constraints, &constraint{kind: constraintUserRequire, req: req})
		r.push(task{req: req, config: config})
	}

	for len(r.tasks) > 0 {
		t := r.tasks[0]
		r.tasks = r.tasks[1:]
		if err := resolveEvalPackage(ctx, t, evaluator, common, r); err != nil {
			return ResolutionResult{}, packageContextError(t.req, err)
		}
		if err := r.checkCompats(ctx, evaluator, common); err != nil {
			return ResolutionResult{}, err
		}
	}

	var unfulfilled []RecommendedRequest
	for _, c := range r.constraints {
		switch c.kind {
		case constraintRecommend:
			if c.invert == r.isRequired(c.req) {
				unfulfilled = append(unfulfilled, RecommendedRequest{Req: c.req, Invert: c.invert})
			}
		case constraintExtend:
			if r.isRequired(c.req) {
				continue
			}
			if source := c.req.Source.Source(); source != nil {
				return ResolutionResult{}, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("the package '%s' extends the functionality of the package '%s', which is not installed", source.DebugSources(), c.req))
			}
			return ResolutionResult{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("a package extends the functionality of the package '%s', which is not installed", c.req))
		}
	}

	out := ResolutionResult{
		Packages:                   r.collectPackages(),
		UnfulfilledRecommendations: unfulfilled,
	}
	log.Ctx(ctx).Debug().
		Int("packages", len(out.Packages)).
		Int("unfulfilled_recommendations", len(out.UnfulfilledRecommendations)).
		Msg("resolution completed")
	return out, nil
}

// resolveEvalPackage evaluates one package and folds its relations into
// the constraint list and task queue.
func resolveEvalPackage(ctx context.Context, t task, evaluator ports.PackageEvaluator, common ports.CommonInput, r *resolver) error {
	if err := r.checkConstraints(t.req); err != nil {
		return err
	}

	props, err := evaluator.GetPackageProperties(ctx, t.req, common)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg("failed to get package properties").
			WithCause(err)
	}
	// First evaluation of a user-seeded requirement: apply the user's
	// version pattern against the reported content versions.
	if c := r.requirementFor(t.req.ID); c != nil && !c.seeded {
		if err := r.seedRequirement(c, props, c.req.ContentVersion); err != nil {
			return err
		}
	}

	input := r.constantInput
	if t.config != nil {
		if err := t.config.OverrideEvalInput(props, &input); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg("failed to apply package configuration").
				WithCause(err)
		}
	}

	result, err := evaluator.EvalPackageRelations(ctx, t.req, input, common)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg("failed to evaluate package").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().
		Str("package", string(t.req.ID)).
		Int("dependencies", len(result.Dependencies)).
		Msg("package evaluated")

	for _, conflict := range sortedStrings(result.Conflicts) {
		req := types.ParseRequest(conflict, types.RequestSource{Kind: types.SourceRefused, Parent: t.req})
		if r.isRequired(req) {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("package '%s' is incompatible with this package", req.DebugSources()))
		}
		r.constraints = append(r.constraints, &constraint{kind: constraintRefuse, req: req})
	}

	for _, dep := range sortedDeps(result.Dependencies) {
		req := types.ParseRequest(dep.Value, types.RequestSource{Kind: types.SourceDependency, Parent: t.req})
		if dep.Explicit && !r.isUserRequired(req) {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("package '%s' is an explicit dependency of this package and must be requested directly by the user", req))
		}
		if err := r.checkConstraints(req); err != nil {
			return err
		}
		if err := r.updateRequireConstraint(ctx, req, evaluator, common); err != nil {
			return err
		}
	}

	for _, bundled := range sortedStrings(result.Bundled) {
		req := types.ParseRequest(bundled, types.RequestSource{Kind: types.SourceBundled, Parent: t.req})
		if err := r.checkConstraints(req); err != nil {
			return err
		}
		if err := r.installBundle(ctx, req, evaluator, common); err != nil {
			return err
		}
	}

	for _, pair := range sortedCompats(result.Compats) {
		check := types.ParseRequest(pair.Check, types.RequestSource{Kind: types.SourceDependency, Parent: t.req})
		compat := types.ParseRequest(pair.Compat, types.RequestSource{Kind: types.SourceDependency, Parent: t.req})
		if !r.compatExists(check, compat) {
			r.constraints = append(r.constraints, &constraint{kind: constraintCompat, req: check, compat: compat})
		}
	}

	for _, extension := range sortedStrings(result.Extensions) {
		req := types.ParseRequest(extension, types.RequestSource{Kind: types.SourceDependency, Parent: t.req})
		r.constraints = append(r.constraints, &constraint{kind: constraintExtend, req: req})
	}

	for _, rec := range sortedRecommendations(result.Recommendations) {
		req := types.ParseRequest(rec.Value, types.RequestSource{Kind: types.SourceDependency, Parent: t.req})
		r.constraints = append(r.constraints, &constraint{kind: constraintRecommend, req: req, invert: rec.Invert})
	}

	return nil
}

// installBundle upgrades any existing requirement for the package into
// a bundle constraint, carrying the narrowed version set over, and
// enqueues the bundled package's evaluation.
func (r *resolver) installBundle(ctx context.Context, req *types.PkgRequest, evaluator ports.PackageEvaluator, common ports.CommonInput) error {
	bundle := &constraint{kind: constraintBundle, req: req}

	if existing := r.requirementFor(req.ID); existing != nil {
		if err := r.ensureSeeded(ctx, existing, evaluator, common); err != nil {
			return err
		}
		// Already a bundle: narrow in place, re-enqueueing only on a
		// strict shrink, so mutual bundles terminate.
		if existing.kind == constraintBundle {
			if len(existing.versions) == 0 || req.ContentVersion.IsAny() {
				return nil
			}
			next := intersect(existing.allowed, req.ContentVersion.Matches(existing.versions))
			if len(next) == 0 {
				return overconstrainedError(req)
			}
			if len(next) < len(existing.allowed) {
				existing.allowed = next
				r.push(task{req: existing.req})
			}
			return nil
		}
		bundle.versions = existing.versions
		bundle.allowed = existing.allowed
		bundle.seeded = true
		if len(bundle.versions) > 0 && !req.ContentVersion.IsAny() {
			bundle.allowed = intersect(existing.allowed, req.ContentVersion.Matches(existing.versions))
			if len(bundle.allowed) == 0 {
				return overconstrainedError(req)
			}
		}
		r.removeRequireConstraint(req)
	} else {
		props, err := evaluator.GetPackageProperties(ctx, req, common)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg(fmt.Sprintf("failed to get properties of package '%s'", req)).
				WithCause(err)
		}
		if err := r.seedRequirement(bundle, props, req.ContentVersion); err != nil {
			return err
		}
	}

	r.constraints = append(r.constraints, bundle)
	r.push(task{req: req})
	return nil
}

func overconstrainedError(req *types.PkgRequest) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("content version constraints for package '%s' cannot be satisfied", req))
}

// packageContextError annotates a failure with the provenance chain of
// the package whose evaluation triggered it.
func packageContextError(req *types.PkgRequest, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeOf(err)).
		WithMsg(fmt.Sprintf("In package '%s'", req.DebugSources())).
		WithCause(err)
}

func sortedStrings(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

func sortedDeps(values []types.RequiredPackage) []types.RequiredPackage {
	out := append([]types.RequiredPackage(nil), values...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return !out[i].Explicit && out[j].Explicit
	})
	return out
}

func sortedCompats(values []types.CompatPair) []types.CompatPair {
	out := append([]types.CompatPair(nil), values...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Check != out[j].Check {
			return out[i].Check < out[j].Check
		}
		return out[i].Compat < out[j].Compat
	})
	return out
}

func sortedRecommendations(values []types.RecommendedPackage) []types.RecommendedPackage {
	out := append([]types.RecommendedPackage(nil), values...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return !out[i].Invert && out[j].Invert
	})
	return out
}
