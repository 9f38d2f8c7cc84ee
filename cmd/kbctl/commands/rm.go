package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	docsysSvc "kbportal/internal/domain/services/docsystem"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newRmCmd(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a node",
		Long: `Delete a node and its entry in the parent folder.

Without --recursive the node's descendants stay in the store as detached
records that no listing reaches; search still finds them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				var result *docsysSvc.DeleteResult
				var err error
				if recursive {
					result, err = lib.Folders.DeleteRecursive(ctx, args[0])
				} else {
					result, err = lib.Folders.Delete(ctx, args[0])
				}
				if err != nil {
					return err
				}

				if a.format != FormatTable {
					return a.print(result, nil, nil)
				}
				fmt.Fprintf(a.out, "Deleted %q (%d removed", result.Node.Name, len(result.RemovedIDs))
				if n := len(result.DetachedIDs); n > 0 {
					fmt.Fprintf(a.out, ", %d detached", n)
				}
				fmt.Fprintln(a.out, ")")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Also delete every descendant")
	return cmd
}
