package config

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// ResampleFilter maps a filter name from the config to an imaging filter.
// An empty name selects Lanczos.
func ResampleFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lanczos":
		return imaging.Lanczos, nil
	case "catmullrom", "catmull-rom":
		return imaging.CatmullRom, nil
	case "linear", "bilinear":
		return imaging.Linear, nil
	case "box":
		return imaging.Box, nil
	case "nearest", "nearestneighbor":
		return imaging.NearestNeighbor, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
}
