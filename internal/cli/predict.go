package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/scoring"
	"github.com/sbenjam1n/talentgen/internal/synth"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one person against every activity",
	Long: `Scores a single person with the rule based scorer. Attributes not given with
--set or --input keep their defaults (25 year old, 170 cm, 70 kg mesomorph
with average traits).

  talentgen predict --set yas=19 --set boy=192 --set hiz=8 --set takım_oyunu_tercihi=Takım`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, _ := cmd.Flags().GetStringToString("set")
		input, _ := cmd.Flags().GetString("input")
		asJSON, _ := cmd.Flags().GetBool("json")

		cat := catalog.Default()
		p := scoring.DefaultPerson()
		if input != "" {
			raw, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("parse input: %w", err)
			}
		}
		if err := synth.Apply(&p, cat, overrides); err != nil {
			return err
		}

		pred, err := scoring.NewPredictor(cat).Predict(p)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(pred)
		}
		fmt.Printf("Recommended: %s (%.1f)\n\n", pred.Activity, pred.Score)
		for _, sc := range pred.Scores {
			marker := " "
			if sc.Activity == pred.Activity {
				marker = "*"
			}
			fmt.Printf(" %s %-16s %5.1f\n", marker, sc.Activity, sc.Value)
		}
		return nil
	},
}

func init() {
	predictCmd.Flags().StringToString("set", nil, "Attribute override, name=value (repeatable)")
	predictCmd.Flags().String("input", "", "JSON file with attribute values keyed by attribute name")
	predictCmd.Flags().Bool("json", false, "Print the prediction as JSON")
}
