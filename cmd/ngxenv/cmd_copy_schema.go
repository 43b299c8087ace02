package main

import (
	"path/filepath"

	"github.com/ngx-env/ngxenv/internal/schemacopy"
	"github.com/ngx-env/ngxenv/internal/ui"
	"github.com/spf13/cobra"
)

func newCopySchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy-schema [schematic...]",
		Short: "Copy schematic schema.json files into the distribution tree",
		Long: `Copies <src>/schematics/<name>/schema.json to <dist>/schematics/<name>/schema.json
for each named schematic (ng-add when none is given). Relative --src and
--dist paths are taken from --root.`,
		RunE: runCopySchema,
	}
	cmd.Flags().String("src", "src", "Source tree containing schematics/")
	cmd.Flags().String("dist", "dist", "Distribution tree receiving schematics/")
	return cmd
}

func runCopySchema(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	src, _ := cmd.Flags().GetString("src")
	dist, _ := cmd.Flags().GetString("dist")

	console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())

	copied, err := schemacopy.CopyAll(underRoot(root, src), underRoot(root, dist), args...)
	for _, p := range copied {
		console.Logf("Copied %s", p)
	}
	return err
}

func underRoot(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
