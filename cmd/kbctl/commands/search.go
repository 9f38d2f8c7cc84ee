package commands

import (
	"strings"

	"github.com/spf13/cobra"

	serviceDocsys "kbportal/internal/service/docsystem"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find nodes whose name contains the query, ignoring case",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				results, err := lib.Search.Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return a.printNodes(results)
			})
		},
	}
}
