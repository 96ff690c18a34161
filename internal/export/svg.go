package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravsim/internal/sim"
)

// Stroke colors cycle per body.
var palette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88", "#ff6b6b", "#0088ff"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func frameBounds(frames []sim.Frame) bounds {
	b := bounds{minX: frames[0].Bodies[0].X, maxX: frames[0].Bodies[0].X, minY: frames[0].Bodies[0].Y, maxY: frames[0].Bodies[0].Y}
	for _, f := range frames {
		for _, p := range f.Bodies {
			if p.X < b.minX {
				b.minX = p.X
			}
			if p.X > b.maxX {
				b.maxX = p.X
			}
			if p.Y < b.minY {
				b.minY = p.Y
			}
			if p.Y > b.maxY {
				b.maxY = p.Y
			}
		}
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

// OrbitsToSVG draws the path of every body across frames, one stroke color
// per body, with a dot at each final position. Massless bodies are drawn
// dashed.
func OrbitsToSVG(frames []sim.Frame, width, height int) string {
	if len(frames) == 0 || len(frames[0].Bodies) == 0 {
		return ""
	}

	b := frameBounds(frames)
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	project := func(x, y float64) (float64, float64) {
		return (x - b.minX) / rangeX * float64(width), float64(height) - (y-b.minY)/rangeY*float64(height)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, first := range frames[0].Bodies {
		color := palette[i%len(palette)]
		dash := ""
		if first.Mass <= 0 {
			dash = ` stroke-dasharray="4 3"`
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, color, dash))
		for k, f := range frames {
			if i >= len(f.Bodies) {
				break
			}
			x, y := project(f.Bodies[i].X, f.Bodies[i].Y)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		last := frames[len(frames)-1].Bodies[i]
		x, y := project(last.X, last.Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
