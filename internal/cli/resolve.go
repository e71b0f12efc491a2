package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modpack-resolver/internal/app"
)

type resolveOptions struct {
	Profile  string
	Packages string
	Output   string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a profile's package set to a full installation list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Profile file path")
	cmd.Flags().StringVar(&opts.Packages, "packages", "", "Package definitions directory")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Report output path (optional)")

	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("packages", cmd.Flags().Lookup("packages"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		ProfilePath: resolveString(cmd, opts.Profile, "profile", "profile"),
		PackagesDir: resolveString(cmd, opts.Packages, "packages", "packages"),
		OutputPath:  resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved %d packages\n", len(result.Report.Packages))
	for _, pkg := range result.Report.Packages {
		fmt.Printf("- %s (%s)\n", pkg.ID, pkg.RequiredBy)
	}
	for _, rec := range result.Report.UnfulfilledRecommendations {
		if rec.Invert {
			fmt.Printf("warning: package '%s' is installed but not recommended\n", rec.ID)
			continue
		}
		fmt.Printf("warning: package '%s' is recommended but not installed\n", rec.ID)
	}
	return nil
}
