package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the attribute and activity catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

		fmt.Fprintln(w, "ATTRIBUTE\tKIND\tGROUP\tIMPORTANCE\tDOMAIN")
		for _, a := range cat.Attributes() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Group, a.Importance, domain(a))
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "ACTIVITY\tCOLUMN\tPOPULARITY\tBODY TYPES\tKEY FEATURES")
		for _, a := range cat.Activities() {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
				a.Name, catalog.ColumnName(a.Name), a.PopularityWeight,
				strings.Join(a.PreferredBodyTypes, ","), strings.Join(a.KeyFeatures, ","))
		}
		return w.Flush()
	},
}

func domain(a catalog.AttributeSpec) string {
	switch a.Kind {
	case catalog.Numeric:
		return fmt.Sprintf("[%g, %g]", a.Min, a.Max)
	case catalog.Derived:
		return "derived"
	default:
		return strings.Join(a.Values, "|")
	}
}
