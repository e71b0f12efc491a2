package app

import "modpack-resolver/internal/types"

type ResolveRequest struct {
	ProfilePath string
	PackagesDir string
	OutputPath  string
}

type ResolveResult struct {
	Report types.ResolutionReport
}

type ValidateRequest struct {
	Path string
}

type InspectRequest struct {
	PackagesDir string
	Package     string
	GameVersion string
	Side        types.Side
	Stability   types.Stability
	Features    []string
}

// InspectResult summarizes one package's definition under a given
// evaluation input.
type InspectResult struct {
	ID         types.PackageID
	Properties types.PackageProperties
	// NewestFirst lists content versions in descending semantic order
	// for display.
	NewestFirst []string
	Relations   types.RelationSet
}
