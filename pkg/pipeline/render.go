package pipeline

import (
	"fmt"

	"github.com/matzehuels/flamelens/pkg/render"
	"github.com/matzehuels/flamelens/pkg/render/callgraph"
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/sink"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Render generates output artifacts in the requested formats.
func Render(t *stack.Tree, l *layout.Layout, v *view.View, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	style, _ := styles.ByName(opts.Style)
	vp := opts.ViewportFor(l)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		data, err := renderFormat(t, l, v, style, vp, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFormat produces one artifact. PNG and PDF rasterize the SVG output
// through rsvg-convert; DOT serializes the call graph instead of the flame.
func renderFormat(t *stack.Tree, l *layout.Layout, v *view.View, style styles.Style, vp layout.Viewport, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(t, l, v, svgOptions(style, vp, opts)...), nil
	case FormatJSON:
		return sink.RenderJSON(t, l, v, jsonOptions(style, vp, opts)...)
	case FormatDOT:
		return []byte(callgraph.ToDOT(t, callgraph.Options{Detailed: opts.Detailed})), nil
	case FormatPNG:
		svg := sink.RenderSVG(t, l, v, svgOptions(style, vp, opts)...)
		return render.ToPNG(svg, DefaultPNGScale)
	case FormatPDF:
		svg := sink.RenderSVG(t, l, v, svgOptions(style, vp, opts)...)
		return render.ToPDF(svg)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// svgOptions builds SVG rendering options from pipeline options.
func svgOptions(style styles.Style, vp layout.Viewport, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithSize(vp.Width, vp.Height),
		sink.WithStyle(style),
		sink.WithMinLabelWidth(opts.MinLabelWidth),
	}
	if vp.Flipped {
		svgOpts = append(svgOpts, sink.WithFlipped())
	}
	return svgOpts
}

// jsonOptions builds JSON rendering options from pipeline options.
func jsonOptions(style styles.Style, vp layout.Viewport, opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{
		sink.WithJSONSize(vp.Width, vp.Height),
		sink.WithJSONStyle(style),
		sink.WithJSONMinLabelWidth(opts.MinLabelWidth),
	}
	if vp.Flipped {
		jsonOpts = append(jsonOpts, sink.WithJSONFlipped())
	}
	return jsonOpts
}
