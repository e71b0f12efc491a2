package ports

import (
	"context"

	"modpack-resolver/internal/types"
)

// PackageSource supplies declarative package definitions.
type PackageSource interface {
	LoadPackage(ctx context.Context, id types.PackageID) (types.DeclarativePackage, error)
	ListPackages(ctx context.Context) ([]types.PackageID, error)
}

// OutputWriterPort persists resolution reports.
type OutputWriterPort interface {
	WriteReport(path string, report types.ResolutionReport) error
}
