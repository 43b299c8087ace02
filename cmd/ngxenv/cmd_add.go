package main

import (
	"fmt"
	"path/filepath"

	"github.com/ngx-env/ngxenv/internal/config"
	"github.com/ngx-env/ngxenv/internal/ngadd"
	"github.com/ngx-env/ngxenv/internal/scaffold"
	"github.com/ngx-env/ngxenv/internal/ui"
	"github.com/ngx-env/ngxenv/internal/workspace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAddCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Switch an application project to the @ngx-env/builder builders",
		Long: `Rewrites the build, serve, test, extract-i18n and server targets of an
application project to the @ngx-env/builder builders, and creates env.d.ts
in the project's source directory.

The project is taken from --project, then from the workspace defaultProject,
then from the only application project in the workspace.

angular.json is saved before env.d.ts is created. If creating env.d.ts fails
after the save, rerun the command: the rewrite is idempotent.`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}
	cmd.Flags().String("project", "", "Name of the project to update")
	cmd.Flags().String("workspace", "", "Workspace configuration file (default: angular.json under --root)")
	cmd.Flags().String("package", cfg.BuilderPackage, "Package providing the replacement builders")
	cmd.Flags().Bool("dry-run", false, "Report changes without writing any file")
	cmd.Flags().Bool("skip-template", false, "Do not create env.d.ts")
	cmd.Flags().Bool("force", false, "Overwrite template files that already exist")
	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	wsPath, _ := cmd.Flags().GetString("workspace")
	project, _ := cmd.Flags().GetString("project")
	pkg, _ := cmd.Flags().GetString("package")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipTemplate, _ := cmd.Flags().GetBool("skip-template")
	force, _ := cmd.Flags().GetBool("force")

	logger := newLogger(cmd)
	defer func() { _ = logger.Sync() }()
	console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx, err := workspace.Load(root, wsPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded workspace", zap.String("path", ctx.Path))

	res, err := ngadd.Rewrite(ctx.Workspace, ngadd.Options{Project: project, Package: pkg}, console)
	if err != nil {
		return err
	}
	for _, c := range res.Changes {
		logger.Debug("rewrote target",
			zap.String("project", res.Project),
			zap.String("target", c.Target),
			zap.String("previous", c.Previous),
			zap.String("builder", c.Builder))
	}
	for _, target := range res.Skipped {
		logger.Debug("target not defined, skipped", zap.String("project", res.Project), zap.String("target", target))
	}

	// Nothing is written before the rewrite succeeded. The template is
	// checked before angular.json is saved and written after it, so a failed
	// save leaves no file behind.
	var templateDir string
	if !skipTemplate {
		templateDir, err = checkTemplate(ctx, res.Project, force)
		if err != nil {
			return err
		}
	}

	if !dryRun {
		if err := ctx.Save(); err != nil {
			return err
		}
	}

	if !skipTemplate {
		if err := materializeTemplate(ctx, templateDir, console, scaffold.Options{Force: force, DryRun: dryRun}); err != nil {
			return err
		}
	}
	console.Logf("UPDATE %s", relPath(ctx.Root, ctx.Path))

	tbl := ui.NewTable(cmd.OutOrStdout(), "TARGET", "PREVIOUS", "BUILDER")
	for _, c := range res.Changes {
		tbl.Row(c.Target, c.Previous, c.Builder)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if dryRun {
		console.Log(`NOTE: The "--dry-run" option means no changes were made.`)
		return nil
	}
	console.Success(fmt.Sprintf("Project %q now builds with %s", res.Project, pkg))
	return nil
}

// checkTemplate resolves the source directory of the named project and
// verifies the template can be placed there without writing anything.
func checkTemplate(ctx *workspace.Context, name string, force bool) (string, error) {
	p, ok := ctx.Workspace.Project(name)
	if !ok {
		return "", fmt.Errorf("project %q disappeared from the workspace", name)
	}
	dir, err := ctx.ProjectDir(p)
	if err != nil {
		return "", err
	}
	if _, err := scaffold.Materialize(dir, scaffold.Options{Force: force, DryRun: true}); err != nil {
		return "", fmt.Errorf("creating template files: %w", err)
	}
	return dir, nil
}

func materializeTemplate(ctx *workspace.Context, dir string, console *ui.Console, opts scaffold.Options) error {
	report, err := scaffold.Materialize(dir, opts)
	if err != nil {
		return fmt.Errorf("creating template files: %w", err)
	}
	for _, w := range report.Written {
		console.Logf("CREATE %s", relPath(ctx.Root, w))
	}
	for _, s := range report.Skipped {
		console.Warn(fmt.Sprintf("%s already exists, skipping (use --force to overwrite)", relPath(ctx.Root, s)))
	}
	return nil
}

// relPath returns p relative to root for display, or p itself when it lies
// outside root.
func relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}
