package cli

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"ftmixer/internal/models"
	"ftmixer/pkg/config"
	"ftmixer/pkg/metrics"
	"ftmixer/pkg/registry"
	"ftmixer/pkg/visualization"
)

// mixOptions holds the flags of the mix command
type mixOptions struct {
	inputs     []string
	weights    []float64
	components []string
	mode       string
	region     string
	size       float64
	target     string
	output     string
	compare    bool
}

func (c *CLI) mixCommand() *cobra.Command {
	var opts mixOptions

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Mix the frequency components of up to four images",
		Long: `Load up to four images into slots 1-4, pick one component and weight per
slot, and reconstruct a new image from the weighted components.

In magphase mode magnitudes and phases are averaged across the slots that
selected them; in realimag mode the weighted real and imaginary parts are
summed. --region inner keeps only low frequencies, --region outer only high
frequencies.`,
		Example: `  ftmixer mix -i face.png -i stripes.png -c magnitude,phase -w 1,1 -o out.png
  ftmixer mix -i a.png -i b.png --mode realimag -c real,imaginary --region inner --size 30 -o out.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyMixDefaults(cmd, cfg, &opts)
			return c.runMix(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "input image (repeat up to 4 times, fills slots in order)")
	cmd.Flags().Float64SliceVarP(&opts.weights, "weights", "w", nil, "per-slot weights 0-1")
	cmd.Flags().StringSliceVarP(&opts.components, "components", "c", nil, "per-slot components: magnitude, phase, real, imaginary")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "mixing mode: magphase or realimag")
	cmd.Flags().StringVar(&opts.region, "region", "", "frequency region: whole, inner or outer")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "region size in percent (0-100)")
	cmd.Flags().StringVar(&opts.target, "target", "1", "output slot to mix into: 1 or 2")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "mixed.png", "output image path (.png or .jpg)")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "log similarity metrics between the output and each input")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// applyMixDefaults fills options the user did not set from the configuration.
func applyMixDefaults(cmd *cobra.Command, cfg *config.Config, opts *mixOptions) {
	flags := cmd.Flags()
	if !flags.Changed("mode") {
		opts.mode = cfg.Mixer.Mode
	}
	if !flags.Changed("region") {
		opts.region = cfg.Mixer.Region
	}
	if !flags.Changed("size") {
		opts.size = cfg.Mixer.RegionSize
	}
	if !flags.Changed("weights") {
		opts.weights = cfg.Mixer.Weights
	}
}

func (c *CLI) runMix(ctx context.Context, cfg *config.Config, opts mixOptions) error {
	logger := loggerFromContext(ctx)

	if len(opts.inputs) == 0 || len(opts.inputs) > models.NumSlots {
		return fmt.Errorf("between 1 and %d inputs required, got %d", models.NumSlots, len(opts.inputs))
	}

	mode, err := models.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	kind, err := models.ParseRegionKind(opts.region)
	if err != nil {
		return err
	}
	target, err := models.ParseOutput(opts.target)
	if err != nil {
		return err
	}
	choices, err := resolveComponents(cfg, opts.components, mode)
	if err != nil {
		return err
	}

	reg, err := c.newRegistry(cfg)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	if err := uploadAll(reg, opts.inputs); err != nil {
		return err
	}
	width, height, _ := reg.Dimensions()
	prog.done(fmt.Sprintf("Loaded %d images at %dx%d", len(opts.inputs), width, height))

	if err := reg.SetMode(mode); err != nil {
		return err
	}
	if err := reg.SetRegion(kind, opts.size); err != nil {
		return err
	}
	for i := range opts.inputs {
		weight := 0.0
		if i < len(opts.weights) {
			weight = opts.weights[i]
		}
		if err := reg.SetWeight(i, weight); err != nil {
			return err
		}
		if i < len(choices) {
			if err := reg.SetChoice(i, choices[i]); err != nil {
				return err
			}
		}
		logger.Debug("slot configured", "slot", i+1, "component", reg.Choice(i), "weight", reg.Weight(i))
	}

	prog = newProgress(logger)
	out, err := reg.Mix(target)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Mixed %s in %s mode over %s region", target, reg.Mode(), reg.Region()))

	viewer := visualization.NewViewer(reg.Region(), false, cfg.Output.JPEGQuality)
	if err := viewer.SaveImage(out, opts.output); err != nil {
		return err
	}
	logger.Info("Wrote output", "path", opts.output)

	if opts.compare {
		for i := range opts.inputs {
			report, err := metrics.Compare(reg.Image(i), out)
			if err != nil {
				logger.Warn("comparison failed", "slot", i+1, "err", err)
				continue
			}
			logger.Info("similarity",
				"slot", i+1,
				"rmse", fmt.Sprintf("%.3f", report.RMSE),
				"psnr", formatDB(report.PSNR),
				"ssim", fmt.Sprintf("%.3f", report.SSIM))
		}
	}
	return nil
}

// newRegistry creates a registry using the configured resample filter.
func (c *CLI) newRegistry(cfg *config.Config) (*registry.Registry, error) {
	filter, err := config.ResampleFilter(cfg.Mixer.Resample)
	if err != nil {
		return nil, err
	}
	return registry.New(registry.WithLogger(c.Logger), registry.WithFilter(filter)), nil
}

// uploadAll reads each path and uploads it into the slot of the same index.
func uploadAll(reg *registry.Registry, paths []string) error {
	for i, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := reg.UploadBytes(i, raw); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// resolveComponents returns the per-slot components. Explicit flags are
// returned as given so the registry can reject ones the mode does not allow.
// Configured defaults are mapped onto the mode's pair position by position,
// so "magnitude, phase" defaults become "real, imaginary" in realimag mode.
func resolveComponents(cfg *config.Config, names []string, mode models.Mode) ([]models.Component, error) {
	if len(names) > models.NumSlots {
		return nil, fmt.Errorf("at most %d components allowed, got %d", models.NumSlots, len(names))
	}
	if len(names) > 0 {
		out := make([]models.Component, len(names))
		for i, name := range names {
			kind, err := models.ParseComponent(name)
			if err != nil {
				return nil, err
			}
			out[i] = kind
		}
		return out, nil
	}

	defaults, err := cfg.SlotComponents()
	if err != nil {
		return nil, err
	}
	pair := mode.Components()
	for i, kind := range defaults {
		if mode.Allows(kind) {
			continue
		}
		if kind == models.Phase || kind == models.Imaginary {
			defaults[i] = pair[1]
		} else {
			defaults[i] = pair[0]
		}
	}
	return defaults, nil
}

func formatDB(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2fdB", v)
}
