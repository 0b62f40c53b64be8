// SPDX-License-Identifier: GPL-2.0-or-later

// Command atlaspack packs the sprites described by a JSON input file into
// output textures and writes a description of where everything landed.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"atlaspack"
	"atlaspack/compose"
	"atlaspack/fault"
	"atlaspack/imageio"
	"atlaspack/raster"
	"atlaspack/report"
)

const version = "1.0.0"

var (
	outputPath   string
	outputFile   string
	logLevel     string
	debugFlag    bool
	autocomplete bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "atlaspack [input-file]",
		Short:         "Pack sprites into texture atlases",
		Long:          "Pack sprites into texture atlases.\n\nReads a JSON packing description from the given file or standard input,\nwrites the packed textures as PNG files and emits a JSON description of\nthe result.",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runPack,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&outputPath, "output-path", "p", ".", "Directory output textures are written to")
	rootCmd.Flags().StringVarP(&outputFile, "output-file", "o", "stdout", "File the output description is written to ('stdout' for standard output)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Draw sprite placement overlays on output textures")
	rootCmd.Flags().BoolVarP(&autocomplete, "autocomplete", "a", false, "Skip fully-transparent cells when expanding grid entries")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("atlaspack %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "atlaspack: %s: %v\n", fault.KindOf(err), err)
		os.Exit(1)
	}
}

func runPack(cmd *cobra.Command, args []string) error {
	log := hclog.New(&hclog.LoggerOptions{
		Name:   "atlaspack",
		Level:  hclog.LevelFromString(logLevel),
		Output: os.Stderr,
	})

	input, dir, err := openInput(args)
	if err != nil {
		return err
	}
	defer input.Close()

	sprites, err := loadInput(input, dir, autocomplete, log)
	if err != nil {
		return err
	}

	packed, err := atlaspack.Pack(sprites, log)
	if err != nil {
		return err
	}

	opts := compose.Options{}
	if debugFlag {
		opts.Debug = raster.NewDefaultDebugOverlay()
	}
	for _, tex := range packed {
		img, err := compose.Texture(tex, opts, log)
		if err != nil {
			return err
		}
		name := filepath.Join(outputPath, tex.Path, tex.Filename)
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return fault.New(fault.IO, "creating output directory for '%s': %v", name, err)
		}
		if err := imageio.WritePNG(name, img); err != nil {
			return fault.New(fault.IO, "writing texture '%s': %v", name, err)
		}
		log.Info("wrote texture", "filename", name, "width", img.W, "height", img.H)
	}

	return writeDescription(report.Build(sprites, packed), log)
}

// openInput resolves the description source: the named file, or standard
// input when no argument is given. The returned dir anchors relative
// source image paths.
func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 {
		return io.NopCloser(os.Stdin), ".", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fault.New(fault.IO, "opening input '%s': %v", args[0], err)
	}
	return f, filepath.Dir(args[0]), nil
}

func writeDescription(doc *report.Document, log hclog.Logger) error {
	if outputFile == "stdout" {
		return doc.WriteJSON(os.Stdout)
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fault.New(fault.IO, "creating output file '%s': %v", outputFile, err)
	}
	defer f.Close()
	if err := doc.WriteJSON(f); err != nil {
		return err
	}
	log.Info("wrote description", "filename", outputFile)
	return nil
}
