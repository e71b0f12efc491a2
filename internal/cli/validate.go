package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modpack-resolver/internal/app"
)

type validateOptions struct {
	File string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a package definition file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Package definition file path")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	path := resolveString(cmd, opts.File, "file", "file")
	if err := service.Validate(ctx, app.ValidateRequest{Path: path}); err != nil {
		return err
	}
	fmt.Printf("validated: %s\n", path)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
