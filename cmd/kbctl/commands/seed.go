package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kbportal/internal/seed"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func newSeedCmd(a *app) *cobra.Command {
	var reset bool
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo tree (or a YAML layout) to the slot",
		Long: `Write a freshly built tree to the configured slot.

The slot is left alone when it already holds a tree unless --reset is
given, in which case the existing tree is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kv, err := a.openSlot(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			persister := serviceDocsys.NewSlotPersister(kv, a.cfg.SlotKey)
			_, found, err := persister.Load(ctx)
			if err != nil && !reset {
				return fmt.Errorf("read slot %s: %w", a.cfg.SlotKey, err)
			}
			if found && !reset {
				return fmt.Errorf("slot %s already holds a document tree, use --reset to replace it", a.cfg.SlotKey)
			}

			build := seed.DefaultTree
			if file != "" {
				build = seed.FromFile(file)
			}
			tree, err := build(serviceDocsys.NewIDGenerator())
			if err != nil {
				return err
			}
			if err := tree.Validate(); err != nil {
				return fmt.Errorf("seed layout: %w", err)
			}
			if err := persister.Save(ctx, tree); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Seeded %d node(s) into %s\n", tree.Len(), a.cfg.SlotKey)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Replace an existing tree")
	cmd.Flags().StringVar(&file, "file", "", "YAML layout to seed instead of the demo tree")
	return cmd
}
