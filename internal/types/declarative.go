package types

// DeclarativeMeta is display metadata for a declarative package.
type DeclarativeMeta struct {
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Authors     []string `yaml:"authors,omitempty" json:"authors,omitempty"`
	Website     string   `yaml:"website,omitempty" json:"website,omitempty"`
}

// DeclarativeRelations declares a package's relationships in the
// declarative format. Dependency lists are flat; no alternative groups.
type DeclarativeRelations struct {
	Dependencies         []string             `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	ExplicitDependencies []string             `yaml:"explicit_dependencies,omitempty" json:"explicit_dependencies,omitempty"`
	Conflicts            []string             `yaml:"conflicts,omitempty" json:"conflicts,omitempty"`
	Extensions           []string             `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Bundled              []string             `yaml:"bundled,omitempty" json:"bundled,omitempty"`
	Compats              [][]string           `yaml:"compats,omitempty" json:"compats,omitempty"`
	Recommendations      []RecommendedPackage `yaml:"recommendations,omitempty" json:"recommendations,omitempty"`
}

// Merge appends another set of relations onto this one.
func (r *DeclarativeRelations) Merge(other DeclarativeRelations) {
	r.Dependencies = append(r.Dependencies, other.Dependencies...)
	r.ExplicitDependencies = append(r.ExplicitDependencies, other.ExplicitDependencies...)
	r.Conflicts = append(r.Conflicts, other.Conflicts...)
	r.Extensions = append(r.Extensions, other.Extensions...)
	r.Bundled = append(r.Bundled, other.Bundled...)
	r.Compats = append(r.Compats, other.Compats...)
	r.Recommendations = append(r.Recommendations, other.Recommendations...)
}

func (r DeclarativeRelations) IsEmpty() bool {
	return len(r.Dependencies) == 0 &&
		len(r.ExplicitDependencies) == 0 &&
		len(r.Conflicts) == 0 &&
		len(r.Extensions) == 0 &&
		len(r.Bundled) == 0 &&
		len(r.Compats) == 0 &&
		len(r.Recommendations) == 0
}

// ToRelationSet flattens the declarative relations into the evaluator
// result form.
func (r DeclarativeRelations) ToRelationSet() RelationSet {
	out := RelationSet{
		Conflicts:       append([]string(nil), r.Conflicts...),
		Bundled:         append([]string(nil), r.Bundled...),
		Extensions:      append([]string(nil), r.Extensions...),
		Recommendations: append([]RecommendedPackage(nil), r.Recommendations...),
	}
	for _, dep := range r.Dependencies {
		out.Dependencies = append(out.Dependencies, RequiredPackage{Value: dep})
	}
	for _, dep := range r.ExplicitDependencies {
		out.Dependencies = append(out.Dependencies, RequiredPackage{Value: dep, Explicit: true})
	}
	for _, pair := range r.Compats {
		if len(pair) != 2 {
			continue
		}
		out.Compats = append(out.Compats, CompatPair{Check: pair[0], Compat: pair[1]})
	}
	return out
}

// DeclarativeConditionSet gates a conditional rule. Every specified
// field must match the evaluation input for the rule to apply.
type DeclarativeConditionSet struct {
	GameVersions []string  `yaml:"game_versions,omitempty" json:"game_versions,omitempty"`
	Side         Side      `yaml:"side,omitempty" json:"side,omitempty"`
	Stability    Stability `yaml:"stability,omitempty" json:"stability,omitempty"`
	Features     []string  `yaml:"features,omitempty" json:"features,omitempty"`
}

// DeclarativeRule conditionally appends relations to a package.
type DeclarativeRule struct {
	Conditions []DeclarativeConditionSet `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Relations  DeclarativeRelations      `yaml:"relations,omitempty" json:"relations,omitempty"`
	Notices    []string                  `yaml:"notices,omitempty" json:"notices,omitempty"`
}

// DeclarativePackage is the on-disk form of a declarative package
// definition, loadable from JSON or YAML.
type DeclarativePackage struct {
	Meta       DeclarativeMeta      `yaml:"meta,omitempty" json:"meta,omitempty"`
	Properties PackageProperties    `yaml:"properties,omitempty" json:"properties,omitempty"`
	Relations  DeclarativeRelations `yaml:"relations,omitempty" json:"relations,omitempty"`
	Rules      []DeclarativeRule    `yaml:"conditional_rules,omitempty" json:"conditional_rules,omitempty"`
}
