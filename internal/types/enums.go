package types

// SourceKind says where a package request came from.
type SourceKind string

const (
	SourceUserRequire SourceKind = "user_require"
	SourceBundled     SourceKind = "bundled"
	SourceDependency  SourceKind = "dependency"
	SourceRefused     SourceKind = "refused"
	SourceRepository  SourceKind = "repository"
)

type PatternKind string

const (
	PatternAny    PatternKind = "any"
	PatternLatest PatternKind = "latest"
	PatternSingle PatternKind = "single"
	PatternBefore PatternKind = "before"
	PatternAfter  PatternKind = "after"
	PatternRange  PatternKind = "range"
)

type Stability string

const (
	StabilityStable Stability = "stable"
	StabilityLatest Stability = "latest"
)

type Side string

const (
	SideAny    Side = ""
	SideClient Side = "client"
	SideServer Side = "server"
)
