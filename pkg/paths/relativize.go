package paths

import (
	"path/filepath"
	"strings"
)

// Relativize returns the shortest relative path that, resolved against
// fromDir, names toTarget. Both inputs must be absolute and already
// symlink-free; no filesystem access happens here.
//
// The boolean is false when no relative path can be expressed: either
// input is relative, or the two live under different volumes.
func Relativize(fromDir, toTarget string) (string, bool) {
	if !filepath.IsAbs(fromDir) || !filepath.IsAbs(toTarget) {
		return "", false
	}

	fromVol, fromComps := split(Normalize(fromDir))
	toVol, toComps := split(Normalize(toTarget))
	if !strings.EqualFold(fromVol, toVol) {
		return "", false
	}

	from := names(fromComps)
	to := names(toComps)

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	if len(parts) == 0 {
		return ".", true
	}
	return strings.Join(parts, string(filepath.Separator)), true
}

// names keeps only the named components of an absolute, normalized path.
func names(comps []component) []string {
	out := make([]string, 0, len(comps))
	for _, c := range comps {
		if c.kind == normalComponent {
			out = append(out, c.name)
		}
	}
	return out
}
