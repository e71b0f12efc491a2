package types

// ResolvedPackage is one entry of the resolution report.
type ResolvedPackage struct {
	ID PackageID `yaml:"id" json:"id"`
	// RequiredBy renders the provenance chain that pulled the package in.
	RequiredBy string `yaml:"required_by" json:"required_by"`
}

// UnfulfilledRecommendation is an advisory entry: a recommendation that
// the final package set does not honor.
type UnfulfilledRecommendation struct {
	ID     PackageID `yaml:"id" json:"id"`
	Invert bool      `yaml:"invert,omitempty" json:"invert,omitempty"`
}

// ResolutionReport is the serialized result of one resolution run.
type ResolutionReport struct {
	GeneratedAt                string                      `yaml:"generated_at,omitempty" json:"generated_at,omitempty"`
	GameVersion                string                      `yaml:"game_version,omitempty" json:"game_version,omitempty"`
	Packages                   []ResolvedPackage           `yaml:"packages" json:"packages"`
	UnfulfilledRecommendations []UnfulfilledRecommendation `yaml:"unfulfilled_recommendations,omitempty" json:"unfulfilled_recommendations,omitempty"`
}
