package types

import "strings"

// PackageID identifies one package in a repository.
type PackageID string

// RequestSource records why a package was requested. Sources form a
// chain back to a user request or the repository; the chain is always
// acyclic because a source references a strictly earlier request.
type RequestSource struct {
	Kind   SourceKind
	Parent *PkgRequest
}

// Source returns the package this request came from, if any.
func (s RequestSource) Source() *PkgRequest {
	switch s.Kind {
	case SourceDependency, SourceBundled:
		return s.Parent
	default:
		return nil
	}
}

// IsUserBundled reports whether this source chain is only bundles
// leading up to a user require.
func (s RequestSource) IsUserBundled() bool {
	if s.Kind == SourceUserRequire {
		return true
	}
	return s.Kind == SourceBundled && s.Parent.Source.IsUserBundled()
}

// rank orders source kinds for deterministic iteration.
func (s RequestSource) rank() int {
	switch s.Kind {
	case SourceUserRequire:
		return 0
	case SourceBundled:
		return 1
	case SourceDependency:
		return 2
	case SourceRefused:
		return 3
	default:
		return 4
	}
}

// PkgRequest names one package along with the content versions wanted
// from it and the provenance of the request. Two requests are the same
// resolver node when their IDs match, regardless of version pattern or
// provenance.
type PkgRequest struct {
	ID             PackageID
	ContentVersion VersionPattern
	Source         RequestSource
}

func NewRequest(id PackageID, source RequestSource, pattern VersionPattern) *PkgRequest {
	return &PkgRequest{ID: id, ContentVersion: pattern, Source: source}
}

// ParseRequest splits an "id@pattern" string into a request. Without an
// '@' the request matches any content version.
func ParseRequest(value string, source RequestSource) *PkgRequest {
	id, pattern, found := strings.Cut(value, "@")
	if !found || pattern == "" {
		return NewRequest(PackageID(id), source, AnyVersion())
	}
	return NewRequest(PackageID(id), source, ParseVersionPattern(pattern))
}

// SameAs compares requests by package ID only.
func (r *PkgRequest) SameAs(other *PkgRequest) bool {
	return other != nil && r.ID == other.ID
}

func (r *PkgRequest) String() string {
	return string(r.ID)
}

// Less orders requests by ID, then by source rank, for reproducible
// processing and error text.
func (r *PkgRequest) Less(other *PkgRequest) bool {
	if r.ID != other.ID {
		return r.ID < other.ID
	}
	return r.Source.rank() < other.Source.rank()
}

// DebugSources renders the provenance chain for error messages, e.g.
// "smithed -> create-compat" for a dependency or "base => addon" for a
// bundle.
func (r *PkgRequest) DebugSources() string {
	switch r.Source.Kind {
	case SourceDependency:
		return r.Source.Parent.DebugSources() + " -> " + string(r.ID)
	case SourceBundled:
		return r.Source.Parent.DebugSources() + " => " + string(r.ID)
	case SourceRefused:
		return r.Source.Parent.DebugSources() + " =X=> " + string(r.ID)
	case SourceRepository:
		return "Repository -> " + string(r.ID)
	default:
		return string(r.ID)
	}
}

// MaxPackageIDLength bounds package identifiers.
const MaxPackageIDLength = 32

// IsValidPackageID checks an identifier: lowercase ASCII letters,
// digits and dashes only, within the length bound.
func IsValidPackageID(id PackageID) bool {
	if len(id) == 0 || len(id) > MaxPackageIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
