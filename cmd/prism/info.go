package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model>",
		Short: "Display general information about a model",
		Long:  "Show vertex and triangle counts, the bounding box and any warnings raised while loading.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd, args[0])
		},
	}
}

func (a *app) runInfo(cmd *cobra.Command, path string) error {
	mesh, err := a.loadModel(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lo, hi := mesh.GetBounds()
	size := mesh.Size()

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Name: %s\n", filepath.Base(path))
	fmt.Fprintf(out, "File: %s\n\n", path)

	fmt.Fprintf(out, "Vertices: %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "Triangles: %d\n\n", mesh.TriangleCount())

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", lo)
	fmt.Fprintf(out, "  Max: %s\n", hi)
	fmt.Fprintf(out, "  Center: %s\n", mesh.Center())
	fmt.Fprintf(out, "  Size: %.6f x %.6f x %.6f\n", size.X, size.Y, size.Z)

	if warnings := mesh.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}
	return nil
}
