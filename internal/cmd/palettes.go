package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/frostdune/internal/config"
)

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List or export the built-in palette collection",
	RunE:  runPalettes,
}

func init() {
	rootCmd.AddCommand(palettesCmd)

	palettesCmd.Flags().String("export", "", "Write the palettes as JSON to this file instead of listing them")
}

func runPalettes(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	exportPath, err := cmd.Flags().GetString("export")
	if err != nil {
		return err
	}

	if exportPath != "" {
		if err := config.SavePalettes(config.BuiltinPalettes, exportPath); err != nil {
			return err
		}
		logger.Info("Exported palettes", "path", exportPath, "count", len(config.BuiltinPalettes))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range config.BuiltinPalettes {
		fmt.Fprintf(w, "%s\t%v\n", p.Name, p.Colors)
	}
	return w.Flush()
}
