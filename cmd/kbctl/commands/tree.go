package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	models "kbportal/internal/domain/models/docsystem"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the whole document tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				export, err := lib.Tree.GetTree(ctx)
				if err != nil {
					return err
				}
				if a.format != FormatTable {
					return a.print(export, nil, nil)
				}

				var b strings.Builder
				writeTree(&b, export.Root, 0)
				fmt.Fprint(a.out, b.String())
				fmt.Fprintf(a.out, "\n%d node(s)", export.NodeCount)
				if len(export.Detached) > 0 {
					fmt.Fprintf(a.out, ", %d detached", len(export.Detached))
				}
				fmt.Fprintln(a.out)
				return nil
			})
		},
	}
}

func writeTree(b *strings.Builder, n *models.TreeNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Name)
	if n.Kind == models.KindFolder {
		b.WriteString("/")
	} else if n.File != nil {
		fmt.Fprintf(b, "  (%s)", n.File.SizeLabel)
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		writeTree(b, c, depth+1)
	}
}
