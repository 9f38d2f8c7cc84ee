package commands

import (
	"github.com/spf13/cobra"

	docsysSvc "kbportal/internal/domain/services/docsystem"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newMkdirCmd(a *app) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create an empty folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				req := &docsysSvc.CreateFolderRequest{Name: args[0]}
				if parent != "" {
					req.ParentID = &parent
				}
				folder, err := lib.Folders.CreateFolder(ctx, req)
				if err != nil {
					return err
				}
				return a.printNode(folder)
			})
		},
	}
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent folder id (default: root)")
	return cmd
}
