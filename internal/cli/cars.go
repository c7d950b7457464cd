package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"carcatalog/internal/model"
)

func newCarsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cars",
		Aliases: []string{"car"},
		Short:   "List and edit cars",
	}
	cmd.AddCommand(
		newCarsListCmd(opts),
		newCarsGetCmd(opts),
		newCarsCreateCmd(opts),
		newCarsUpdateCmd(opts),
		newCarsDeleteCmd(opts),
	)
	return cmd
}

func newCarsListCmd(opts *options) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List one page of cars, optionally within a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.dataService(cmd)
			if err != nil {
				return err
			}
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			res, err := ds.GetCarList(cmd.Context(), category, page)
			if err != nil {
				return err
			}
			return opts.printer(cmd).print(res, func(tw *tabwriter.Writer) {
				writeCarRows(tw, res.Items)
				fmt.Fprintf(tw, "\npage %d of %d\n", res.CurrentPage, res.TotalPages)
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func newCarsGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ds, err := opts.dataService(cmd)
			if err != nil {
				return err
			}
			car, err := ds.GetCarByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.printer(cmd).print(car, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "ID:\t%d\n", car.ID)
				fmt.Fprintf(tw, "Name:\t%s\n", car.Name)
				fmt.Fprintf(tw, "Description:\t%s\n", car.Description)
				fmt.Fprintf(tw, "Price:\t%.2f\n", car.Price)
				fmt.Fprintf(tw, "Category:\t%s\n", categoryLabel(car))
				if car.ImageURL != "" {
					fmt.Fprintf(tw, "Image:\t%s\n", car.ImageURL)
				}
			})
		},
	}
}

type carFlags struct {
	name        string
	description string
	price       float64
	categoryID  int
}

func (f *carFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "car name")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	cmd.Flags().Float64Var(&f.price, "price", 0, "price")
	cmd.Flags().IntVar(&f.categoryID, "category-id", 0, "category id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category-id")
}

func (f *carFlags) car() model.Car {
	return model.Car{
		Name:        f.name,
		Description: f.description,
		Price:       f.price,
		CategoryID:  f.categoryID,
	}
}

func newCarsCreateCmd(opts *options) *cobra.Command {
	var f carFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a car",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.dataService(cmd)
			if err != nil {
				return err
			}
			car, err := ds.CreateCar(cmd.Context(), f.car())
			if err != nil {
				return err
			}
			p := opts.printer(cmd)
			if p.format != "table" {
				return p.print(car, nil)
			}
			p.message("created car %d", car.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newCarsUpdateCmd(opts *options) *cobra.Command {
	var f carFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the fields of a car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ds, err := opts.dataService(cmd)
			if err != nil {
				return err
			}
			if err := ds.UpdateCar(cmd.Context(), id, f.car()); err != nil {
				return err
			}
			opts.printer(cmd).message("updated car %d", id)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newCarsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a car and its picture",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ds, err := opts.dataService(cmd)
			if err != nil {
				return err
			}
			if err := ds.DeleteCar(cmd.Context(), id); err != nil {
				return err
			}
			opts.printer(cmd).message("deleted car %d", id)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid car id %q", s)
	}
	return id, nil
}

func writeCarRows(tw *tabwriter.Writer, cars []model.Car) {
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, c := range cars {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", c.ID, c.Name, categoryLabel(&c), c.Price)
	}
}

func categoryLabel(c *model.Car) string {
	if c.Category != nil {
		return c.Category.NormalizedName
	}
	return strconv.Itoa(c.CategoryID)
}
