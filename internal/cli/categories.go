package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List car categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.dataService(cmd)
			if err != nil {
				return err
			}
			cats, err := ds.GetCategoryList(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printer(cmd).print(cats, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tNAME\tSLUG")
				for _, c := range cats {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.NormalizedName)
				}
			})
		},
	}
}
