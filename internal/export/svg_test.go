package export

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/sim"
)

func TestOrbitsToSVG(t *testing.T) {
	frames := []sim.Frame{
		{Time: 0, Bodies: []gravity.Result{{Mass: 1, X: 0, Y: 0}, {Mass: 0, X: 10, Y: 10}}},
		{Time: 0.1, Bodies: []gravity.Result{{Mass: 1, X: 1, Y: 1}, {Mass: 0, X: 10, Y: 10}}},
	}

	svg := OrbitsToSVG(frames, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 end markers, got %d", got)
	}
	if got := strings.Count(svg, "stroke-dasharray"); got != 1 {
		t.Errorf("expected the massless body dashed, got %d dashed paths", got)
	}
}

func TestOrbitsToSVGEmpty(t *testing.T) {
	if svg := OrbitsToSVG(nil, 100, 100); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}
