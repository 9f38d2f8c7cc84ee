package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	models "kbportal/internal/domain/models/docsystem"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [folder-id]",
		Short: "List a folder, folders first then by name",
		Long: `List the children of a folder. Without an id the root folder is listed.

Examples:
  kbctl ls
  kbctl ls folder-1718000000000-0-3f2a9c1b -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				var location *models.Location
				var err error
				if len(args) == 1 {
					location, err = lib.Navigation.Enter(ctx, args[0])
				} else {
					location, err = lib.Navigation.Current(ctx)
				}
				if err != nil {
					return err
				}

				items, err := lib.Navigation.ListCurrent(ctx)
				if err != nil {
					return err
				}
				if a.format == FormatTable {
					fmt.Fprintln(a.out, breadcrumbPath(location.Breadcrumb))
				}
				return a.printNodes(items)
			})
		},
	}
}

func breadcrumbPath(crumbs []models.Crumb) string {
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		parts[i] = c.Name
	}
	return strings.Join(parts, " / ")
}
