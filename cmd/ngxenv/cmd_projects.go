package main

import (
	"encoding/json"
	"fmt"

	"github.com/ngx-env/ngxenv/internal/ui"
	"github.com/ngx-env/ngxenv/internal/workspace"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects of the workspace",
		Args:  cobra.NoArgs,
		RunE:  runProjects,
	}
	cmd.Flags().String("workspace", "", "Workspace configuration file (default: angular.json under --root)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
	return cmd
}

type projectInfo struct {
	Name         string `json:"name" yaml:"name"`
	ProjectType  string `json:"projectType" yaml:"projectType"`
	SourceRoot   string `json:"sourceRoot" yaml:"sourceRoot"`
	Prefix       string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	BuildBuilder string `json:"buildBuilder,omitempty" yaml:"buildBuilder,omitempty"`
	Default      bool   `json:"default" yaml:"default"`
}

func runProjects(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	wsPath, _ := cmd.Flags().GetString("workspace")
	output, _ := cmd.Flags().GetString("output")

	ctx, err := workspace.Load(root, wsPath)
	if err != nil {
		return err
	}

	def := ctx.Workspace.DefaultProject()
	projects := ctx.Workspace.Projects()
	infos := make([]projectInfo, 0, len(projects))
	for _, p := range projects {
		info := projectInfo{
			Name:        p.Name,
			ProjectType: string(p.ProjectType),
			SourceRoot:  p.EffectiveSourceRoot(),
			Prefix:      p.Prefix,
			Default:     p.Name == def,
		}
		if build, ok := p.Target("build"); ok {
			info.BuildBuilder = build.Builder
		}
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()
	switch output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding projects: %w", err)
		}
		return enc.Close()
	case "table", "":
		tbl := ui.NewTable(out, "PROJECT", "TYPE", "SOURCE ROOT", "PREFIX", "BUILD BUILDER", "DEFAULT")
		for _, i := range infos {
			marker := ""
			if i.Default {
				marker = "*"
			}
			tbl.Row(i.Name, i.ProjectType, i.SourceRoot, i.Prefix, i.BuildBuilder, marker)
		}
		return tbl.Flush()
	default:
		return fmt.Errorf("unknown output format: %q (must be table, json, or yaml)", output)
	}
}
