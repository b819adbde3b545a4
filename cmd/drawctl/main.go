// Command drawctl works with drawing files outside the server: create,
// inspect and export them, and find servers on the local network.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simpledraw/simpledraw/internal/discovery"
	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/export"
	"github.com/simpledraw/simpledraw/internal/store"
	"github.com/simpledraw/simpledraw/internal/tools"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "drawctl",
		Short:        "Manage simpledraw drawing files",
		SilenceUsage: true,
	}
	root.AddCommand(newCmd(), infoCmd(), exportCmd(), discoverCmd())
	return root
}

func newCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Write the default drawing to FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if existing != nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
			}
			if err := store.Save(args[0], tools.CreateDefault()); err != nil {
				return err
			}
			slog.Info("drawing created", "path", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing drawing")
	return cmd
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Summarize a drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadExisting(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size:  %gx%g\n", c.Width, c.Height)
			fmt.Fprintf(out, "items: %d\n", len(c.Items))
			for _, item := range c.Items {
				fmt.Fprintf(out, "  %s\n", describe(item))
			}
			active := "none"
			if c.Tool != nil {
				active = c.Tool.Name()
			}
			fmt.Fprintf(out, "tools: %d (active %s)\n", len(c.Tools), active)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE OUT.pdf",
		Short: "Render a drawing to PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadExisting(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := export.PDF(f, c); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			slog.Info("exported", "path", args[1], "items", len(c.Items))
			return nil
		},
	}
}

func discoverCmd() *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List simpledraw servers on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			found := 0
			err := discovery.Browse(service, func(addr string) {
				found++
				fmt.Fprintln(cmd.OutOrStdout(), addr)
			})
			slog.Info("discovery finished", "found", found, "took", time.Since(start))
			return err
		},
	}
	cmd.Flags().StringVar(&service, "service", "_simpledraw._tcp", "mDNS service type")
	return cmd
}

func loadExisting(path string) (*document.Canvas, error) {
	c, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%s: no such drawing", path)
	}
	return c, nil
}

func describe(e document.Entity) string {
	switch e := e.(type) {
	case *document.Point:
		return fmt.Sprintf("point (%g, %g)", e.X, e.Y)
	case document.Shape:
		b := document.BoundsOf(document.DistinctPoints(e))
		return fmt.Sprintf("%T at (%g, %g) %gx%g", e, b.X, b.Y, b.Width, b.Height)
	default:
		return fmt.Sprintf("%T", e)
	}
}
