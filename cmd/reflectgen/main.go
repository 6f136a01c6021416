// Command reflectgen drives the reflection extraction and emission
// pipeline described in the core design: parse one annotated C++ header,
// select and model its reflected classes, and emit a companion
// header/source pair that registers them with the runtime metaspace.
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"go.avalanche.dev/reflectgen/internal/astwalk"
	"go.avalanche.dev/reflectgen/internal/cmdline"
	"go.avalanche.dev/reflectgen/internal/emit"
	"go.avalanche.dev/reflectgen/internal/frontend"
	"go.avalanche.dev/reflectgen/internal/model"
	"go.avalanche.dev/reflectgen/internal/modulelist"
	"go.avalanche.dev/reflectgen/internal/writer"
)

func main() {
	defer glog.Flush()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		var accessErr *model.AccessError
		if ok := asAccessError(err, &accessErr); ok {
			fmt.Fprintln(os.Stderr, accessErr.Error())
		} else {
			fmt.Fprintf(os.Stderr, "reflectgen: %v\n", err)
		}
		os.Exit(1)
	}
}

func asAccessError(err error, target **model.AccessError) bool {
	for err != nil {
		if ae, ok := err.(*model.AccessError); ok {
			*target = ae
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reflectgen",
		Short:         "Build-time reflection metadata generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBindingCmd())
	root.AddCommand(newModuleListCmd())
	root.AddCommand(newCleanCmd())
	return root
}

func newBindingCmd() *cobra.Command {
	var cfg cmdline.Config
	var includePathRaw string

	cmd := &cobra.Command{
		Use:   "binding",
		Short: "Generate the reflection header/source pair for one input header",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.IncludePaths = cmdline.SplitIncludePaths(includePathRaw)
			return runBinding(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.BinaryDir, "binary-dir", "", "build directory (reserved)")
	cmd.Flags().StringVar(&cfg.InputHeader, "input-header", "", "path to the annotated input header")
	cmd.Flags().StringVar(&cfg.OutHeader, "out-header", "", "path to write the generated header")
	cmd.Flags().StringVar(&cfg.OutSource, "out-source", "", "path to write the generated source")
	cmd.Flags().StringVar(&includePathRaw, "include-path", "", "';'-separated list of include directories")

	for _, name := range []string{"input-header", "out-header", "out-source"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	return cmd
}

func runBinding(cfg cmdline.Config) error {
	glog.V(1).Infof("parsing %s", cfg.InputHeader)
	tu, err := frontend.Parse(frontend.Options{
		InputHeader:  cfg.InputHeader,
		IncludePaths: cfg.IncludePaths,
	})
	if err != nil {
		return err
	}
	defer tu.Dispose()

	classes, err := astwalk.Walk(tu.Cursor(), cfg.InputHeader)
	if err != nil {
		return err
	}
	glog.V(1).Infof("selected %d class definitions", len(classes))

	runID := cmdline.NewRunID()
	tree := emit.BuildTree(cfg.InputHeader, cfg.OutHeader, runID, classes)
	glog.V(1).Infof("registering %d classes under run id %s", len(tree.Classes), runID)

	emitter := emit.New()
	header, err := emitter.Header(tree)
	if err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}
	source, err := emitter.Source(tree)
	if err != nil {
		return fmt.Errorf("rendering source: %w", err)
	}

	return writer.Write(cfg.OutHeader, header, cfg.OutSource, source)
}

func newModuleListCmd() *cobra.Command {
	var outHeader, modules string

	cmd := &cobra.Command{
		Use:   "module-list",
		Short: "Write the enabled_modules header (out of core scope)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return modulelist.Write(outHeader, modules)
		},
	}
	cmd.Flags().StringVar(&outHeader, "out-header", "", "path to write the enabled-modules header")
	cmd.Flags().StringVar(&modules, "modules", "", "';'-separated list of enabled module names")
	if err := cmd.MarkFlagRequired("out-header"); err != nil {
		panic(err)
	}
	return cmd
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "No-op placeholder kept for build-system symmetry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
}
