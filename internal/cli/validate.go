package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/audit"
	"github.com/sbenjam1n/talentgen/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <csv>",
	Short: "Check a dataset file against the catalog schema and record invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		res, err := audit.New(catalog.Default()).File(args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			status := "PASS"
			if !res.Passed {
				status = "FAIL"
			}
			fmt.Printf("%s %s (tier %d): %s\n", status, args[0], res.Tier, res.Message)
			for _, d := range res.Details {
				fmt.Printf("  row %d %s %s: expected %s, got %q\n", d.Row, d.Check, d.Column, d.Expected, d.Got)
			}
			if res.Failures > len(res.Details) {
				fmt.Printf("  ... %d more\n", res.Failures-len(res.Details))
			}
		}
		if !res.Passed {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("json", false, "Print the result as JSON")
}
