package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ftmixer/internal/models"
	"ftmixer/pkg/config"
	"ftmixer/pkg/visualization"
)

type previewOptions struct {
	inputs     []string
	components []string
	region     string
	size       float64
	outputDir  string
	noOverlay  bool
}

func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Write normalized component previews of images",
		Long: `Compute the centered spectrum of each input and write its magnitude,
phase, real and imaginary views as PNG files scaled to 0-255. Magnitude, real
and imaginary views are log-compressed. Constant components cannot be
normalized and are reported and skipped.`,
		Example: `  ftmixer preview -i face.png -o previews
  ftmixer preview -i a.png -i b.png -c magnitude --region inner --size 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("region") {
				opts.region = cfg.Mixer.Region
			}
			if !flags.Changed("size") {
				opts.size = cfg.Mixer.RegionSize
			}
			if !flags.Changed("output") {
				opts.outputDir = cfg.Output.PreviewDir
			}
			return c.runPreview(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "input image (repeat up to 4 times)")
	cmd.Flags().StringSliceVarP(&opts.components, "components", "c", nil, "components to write (default all)")
	cmd.Flags().StringVar(&opts.region, "region", "", "region to outline: whole, inner or outer")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "region size in percent (0-100)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "output directory")
	cmd.Flags().BoolVar(&opts.noOverlay, "no-overlay", false, "do not outline the region")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, cfg *config.Config, opts previewOptions) error {
	logger := loggerFromContext(ctx)

	if len(opts.inputs) == 0 || len(opts.inputs) > models.NumSlots {
		return fmt.Errorf("between 1 and %d inputs required, got %d", models.NumSlots, len(opts.inputs))
	}
	kind, err := models.ParseRegionKind(opts.region)
	if err != nil {
		return err
	}
	kinds := make([]models.Component, 0, len(opts.components))
	for _, name := range opts.components {
		k, err := models.ParseComponent(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, k)
	}

	reg, err := c.newRegistry(cfg)
	if err != nil {
		return err
	}
	if err := uploadAll(reg, opts.inputs); err != nil {
		return err
	}
	if err := reg.SetRegion(kind, opts.size); err != nil {
		return err
	}

	overlay := cfg.Output.PreviewOverlay && !opts.noOverlay
	viewer := visualization.NewViewer(reg.Region(), overlay, cfg.Output.JPEGQuality)

	prog := newProgress(logger)
	written := 0
	for i := range opts.inputs {
		results, err := viewer.SavePreviewSet(reg, i, kinds, opts.outputDir)
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Err != nil {
				logger.Warn("preview skipped", "slot", i+1, "component", res.Component, "err", res.Err)
				continue
			}
			logger.Debug("preview written", "slot", i+1, "component", res.Component, "path", res.Path)
			written++
		}
	}
	prog.done(fmt.Sprintf("Wrote %d previews to %s", written, opts.outputDir))
	return nil
}
