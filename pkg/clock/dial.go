package clock

import (
	"math"

	"github.com/codeGROOVE-dev/worldclock/pkg/project"
)

const dialRadius = 5

// renderDial draws a small ASCII dial from the three hand angles.
// Angle 0 points at 12 o'clock and grows clockwise, so x = sin, y =
// -cos. Terminal cells are roughly twice as tall as wide; x is
// stretched to compensate.
func renderDial(p project.Projection) []string {
	size := dialRadius*2 + 1
	width := dialRadius*4 + 1
	grid := make([][]byte, size)
	for i := range grid {
		grid[i] = make([]byte, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	plot := func(angleDeg, reach float64, mark byte) {
		rad := angleDeg * math.Pi / 180
		steps := int(reach * dialRadius * 2)
		for s := 1; s <= steps; s++ {
			d := reach * dialRadius * float64(s) / float64(steps)
			x := dialRadius*2 + int(math.Round(math.Sin(rad)*d*2))
			y := dialRadius + int(math.Round(-math.Cos(rad)*d))
			if y >= 0 && y < size && x >= 0 && x < width {
				grid[y][x] = mark
			}
		}
	}

	// Rim hour marks.
	for h := 0; h < 12; h++ {
		rad := float64(h) / 12 * 2 * math.Pi
		x := dialRadius*2 + int(math.Round(math.Sin(rad)*dialRadius*2))
		y := dialRadius + int(math.Round(-math.Cos(rad)*dialRadius))
		grid[y][x] = '.'
	}

	// Hands, shortest drawn last so it stays visible.
	plot(p.SecondAngle, 0.95, 's')
	plot(p.MinuteAngle, 0.85, 'm')
	plot(p.HourAngle, 0.55, 'H')
	grid[dialRadius][dialRadius*2] = 'o'

	lines := make([]string, size)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}
