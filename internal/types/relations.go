package types

// RequiredPackage is one evaluated dependency. Value may carry an
// "@pattern" suffix constraining the target's content versions.
type RequiredPackage struct {
	Value string `yaml:"value" json:"value"`
	// Explicit dependencies must be required directly by the user.
	Explicit bool `yaml:"explicit,omitempty" json:"explicit,omitempty"`
}

// RecommendedPackage is a soft preference for (or, inverted, against)
// installing a package.
type RecommendedPackage struct {
	Value  string `yaml:"value" json:"value"`
	Invert bool   `yaml:"invert,omitempty" json:"invert,omitempty"`
}

// CompatPair states that if Check ends up required, Compat must be
// installed with it.
type CompatPair struct {
	Check  string `yaml:"check" json:"check"`
	Compat string `yaml:"compat" json:"compat"`
}

// RelationSet is the order-independent result of evaluating one
// package's relationships.
type RelationSet struct {
	Dependencies    []RequiredPackage
	Conflicts       []string
	Bundled         []string
	Compats         []CompatPair
	Extensions      []string
	Recommendations []RecommendedPackage
}

// PackageProperties are the evaluation-independent properties of a
// package definition.
type PackageProperties struct {
	// ContentVersions lists the package's valid content versions in
	// canonical order, oldest first. Empty means the package has no
	// version concept.
	ContentVersions []string `yaml:"content_versions,omitempty" json:"content_versions,omitempty"`
	// Features the package supports.
	Features []string `yaml:"features,omitempty" json:"features,omitempty"`
	// DefaultFeatures enabled when the user configures none.
	DefaultFeatures []string `yaml:"default_features,omitempty" json:"default_features,omitempty"`
}

// EvalInput is the constant evaluation input shared by a resolution
// run. Per-package configuration may override parts of it.
type EvalInput struct {
	GameVersion string
	Side        Side
	Stability   Stability
	Features    []string
}
