package styles

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Recognized frame categories. Unknown categories take the default hue.
const (
	CategoryApp      = "app"
	CategoryLib      = "lib"
	CategoryRuntime  = "runtime"
	CategoryKernel   = "kernel"
	CategoryExternal = "external"
	CategoryInlined  = "inlined"
)

var categoryHues = map[string]float64{
	CategoryApp:      24,  // orange
	CategoryLib:      204, // blue
	CategoryRuntime:  276, // purple
	CategoryKernel:   0,   // red
	CategoryExternal: 96,  // green
	CategoryInlined:  168, // teal
}

const defaultHue = 40 // amber, for uncategorized frames

// HighlightColor marks search hits. It replaces the category color
// entirely, even on faded frames.
const HighlightColor = "#e600e6"

// FadeOpacity is the fill opacity sinks apply to faded ancestor frames.
const FadeOpacity = 0.35

// ColorOf returns the deterministic hex fill for a frame. The category
// picks the hue; a weighted hash of the name's first characters picks the
// shade within it, with earlier characters dominating so sibling frames
// with shared prefixes stay visually grouped.
func ColorOf(name, category string) string {
	hue, ok := categoryHues[category]
	if !ok {
		hue = defaultHue
	}
	v := nameShade(name)
	return colorful.Hsl(hue, 0.72-0.15*v, 0.46+0.22*v).Hex()
}

// nameShade maps a name to [0,1] from its first characters with a 0.7
// per-character decay.
func nameShade(name string) float64 {
	const (
		maxChars = 6
		mod      = 10
		decay    = 0.7
	)

	var hash, maxHash float64
	weight := 1.0
	for i := 0; i < len(name) && i <= maxChars; i++ {
		hash += weight * float64(name[i]%mod)
		maxHash += weight * (mod - 1)
		weight *= decay
	}
	if maxHash > 0 {
		hash /= maxHash
	}
	return hash
}
