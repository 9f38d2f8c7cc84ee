package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	models "kbportal/internal/domain/models/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newUploadCmd(a *app) *cobra.Command {
	var folder string
	var from []string

	cmd := &cobra.Command{
		Use:   "upload [name:size ...]",
		Short: "Add file entries to a folder",
		Long: `Add one file entry per descriptor. Only names and sizes are recorded.

Descriptors are given as name:size-in-bytes arguments, or read from local
paths with --from (a directory, a .zip archive, or a single file).
Interrupting the command stops the upload between items; files already
added are kept.

Examples:
  kbctl upload "Q3 Report.pdf:2516582" notes.md:2048
  kbctl upload --from ./handbook --folder folder-1718000000000-0-3f2a9c1b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := parseDescriptors(args)
			if err != nil {
				return err
			}
			registry := serviceDocsys.NewDescriptorSourceRegistry()
			for _, path := range from {
				found, err := registry.Descriptors(path)
				if err != nil {
					return err
				}
				files = append(files, found...)
			}

			ctx := cmd.Context()
			return a.withLibrary(ctx, func(lib *serviceDocsys.Library) error {
				req := &docsysSvc.IngestRequest{Files: files}
				if folder != "" {
					req.FolderID = &folder
				}
				run, err := lib.Ingest.Ingest(ctx, req)
				if err != nil {
					return err
				}
				defer run.Close()

				for progress, err := range run.All(ctx) {
					if err != nil {
						summary := run.Summary()
						return fmt.Errorf("upload stopped after %d of %d file(s): %w", summary.Processed, summary.Total, err)
					}
					if a.format == FormatTable {
						fmt.Fprintf(a.out, "[%d/%d] %s\n", progress.Processed, progress.Total, progress.Name)
					}
				}

				summary := run.Summary()
				if a.format != FormatTable {
					return a.print(summary, nil, nil)
				}
				fmt.Fprintf(a.out, "%d file(s) uploaded\n", summary.Processed)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Target folder id (default: root)")
	cmd.Flags().StringSliceVar(&from, "from", nil, "Read descriptors from a directory, zip archive or file")
	return cmd
}

// parseDescriptors reads name:size arguments. The size is split at the last
// colon so names may contain colons themselves.
func parseDescriptors(args []string) ([]models.Descriptor, error) {
	files := make([]models.Descriptor, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, ":")
		if i < 0 {
			return nil, fmt.Errorf("descriptor %q: want name:size", arg)
		}
		size, err := strconv.ParseInt(arg[i+1:], 10, 64)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("descriptor %q: size must be a non-negative byte count", arg)
		}
		files = append(files, models.Descriptor{Name: arg[:i], SizeBytes: size})
	}
	return files, nil
}
