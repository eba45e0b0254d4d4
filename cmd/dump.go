package cmd

import (
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Pretty-prints the stored notes for debugging.",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().Bool("no-color", false, "Disable colored output.")
}

func runDump(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	printer := pp.New()
	printer.SetOutput(cmd.OutOrStdout())

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		printer.SetColoringEnabled(false)
	}

	_, err = printer.Println(a.store.Notes())

	return err
}
