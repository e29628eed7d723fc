package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/frostdune/internal/config"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project files",
}

var projectInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write the default frost project to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectInit,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a project file with defaults applied",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectShow,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectInitCmd)
	projectCmd.AddCommand(projectShowCmd)

	projectInitCmd.Flags().Bool("force", false, "Overwrite an existing project file")
}

func runProjectInit(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	path := "project.json"
	if len(args) == 1 {
		path = args[0]
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.SaveProject(config.DefaultProject(), path); err != nil {
		return err
	}
	logger.Info("Wrote default project", "path", path)
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := loadProjectOrDefault(path)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
