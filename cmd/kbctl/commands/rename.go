package commands

import (
	"github.com/spf13/cobra"

	docsysSvc "kbportal/internal/domain/services/docsystem"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder or file; a file keeps its extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				node, err := lib.Folders.Rename(ctx, args[0], &docsysSvc.RenameRequest{Name: args[1]})
				if err != nil {
					return err
				}
				return a.printNode(node)
			})
		},
	}
}
