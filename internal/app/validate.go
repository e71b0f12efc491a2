package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"modpack-resolver/internal/adapters"
	"modpack-resolver/internal/core"
	"modpack-resolver/internal/types"
)

// Validate checks one declarative package definition file. The package
// ID is derived from the filename.
func (s Service) Validate(ctx context.Context, req ValidateRequest) error {
	pkg, err := adapters.LoadPackageFile(req.Path)
	if err != nil {
		return err
	}
	base := filepath.Base(req.Path)
	id := types.PackageID(strings.TrimSuffix(base, filepath.Ext(base)))

	if err := core.NewPackageValidator().Validate(ctx, id, pkg); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("package", string(id)).Msg("package definition is valid")
	return nil
}
