package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/config"
)

// configCommand groups subcommands that manage the config file. They never
// open storage.
func (r *RootCommand) configCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStorage: "true"},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write a config file with the default settings to the --config path
(default: ~/.config/todo/config.yaml). An existing file is kept unless
--force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := r.configPath()
			force, _ := cmd.Flags().GetBool("force")

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("checking config file %s: %w", path, err)
				}
			}

			if err := config.SaveConfig(path, config.DefaultAppConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
