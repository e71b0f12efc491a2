package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modpack-resolver/internal/app"
	"modpack-resolver/internal/types"
)

type inspectOptions struct {
	Packages    string
	Package     string
	GameVersion string
	Side        string
	Stability   string
	Features    []string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a package definition under a given evaluation input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Packages, "packages", "", "Package definitions directory")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Package id, optionally with a version pattern")
	cmd.Flags().StringVar(&opts.GameVersion, "game-version", "", "Game version for conditional rules")
	cmd.Flags().StringVar(&opts.Side, "side", "", "Instance side (client or server)")
	cmd.Flags().StringVar(&opts.Stability, "stability", "", "Stability preference")
	cmd.Flags().StringSliceVar(&opts.Features, "feature", nil, "Enabled features")

	_ = viper.BindPFlag("packages", cmd.Flags().Lookup("packages"))
	_ = viper.BindPFlag("package", cmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("game_version", cmd.Flags().Lookup("game-version"))
	_ = viper.BindPFlag("side", cmd.Flags().Lookup("side"))
	_ = viper.BindPFlag("stability", cmd.Flags().Lookup("stability"))
	_ = viper.BindPFlag("features", cmd.Flags().Lookup("feature"))

	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		PackagesDir: resolveString(cmd, opts.Packages, "packages", "packages"),
		Package:     resolveString(cmd, opts.Package, "package", "package"),
		GameVersion: resolveString(cmd, opts.GameVersion, "game_version", "game-version"),
		Side:        types.Side(resolveString(cmd, opts.Side, "side", "side")),
		Stability:   types.Stability(resolveString(cmd, opts.Stability, "stability", "stability")),
		Features:    resolveStrings(cmd, opts.Features, "features", "feature"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("package: %s\n", result.ID)
	if len(result.NewestFirst) > 0 {
		fmt.Printf("content versions: %s\n", strings.Join(result.NewestFirst, ", "))
	}
	if len(result.Properties.Features) > 0 {
		fmt.Printf("features: %s\n", strings.Join(result.Properties.Features, ", "))
	}
	printRelations(result.Relations)
	return nil
}

func printRelations(relations types.RelationSet) {
	for _, dep := range relations.Dependencies {
		suffix := ""
		if dep.Explicit {
			suffix = " (explicit)"
		}
		fmt.Printf("depends on: %s%s\n", dep.Value, suffix)
	}
	for _, target := range relations.Bundled {
		fmt.Printf("bundles: %s\n", target)
	}
	for _, target := range relations.Conflicts {
		fmt.Printf("conflicts with: %s\n", target)
	}
	for _, pair := range relations.Compats {
		fmt.Printf("compat: %s requires %s\n", pair.Check, pair.Compat)
	}
	for _, target := range relations.Extensions {
		fmt.Printf("extends: %s\n", target)
	}
	for _, rec := range relations.Recommendations {
		if rec.Invert {
			fmt.Printf("recommends against: %s\n", rec.Value)
			continue
		}
		fmt.Printf("recommends: %s\n", rec.Value)
	}
}
