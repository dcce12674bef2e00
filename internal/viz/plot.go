package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravgen/internal/motion"
)

// PlotHeight renders the height-vs-time series of a trajectory as an ascii
// chart sized for a standard terminal.
func PlotHeight(traj motion.Trajectory) string {
	if len(traj) == 0 {
		return ""
	}
	graph := asciigraph.Plot(traj.Heights(),
		asciigraph.Height(20),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("height (m) over %.2fs, %d samples", traj.Last().Time, len(traj))),
	)
	return graph
}

// PlotVelocity renders the velocity series.
func PlotVelocity(traj motion.Trajectory) string {
	if len(traj) == 0 {
		return ""
	}
	vs := make([]float64, len(traj))
	for i, s := range traj {
		vs[i] = s.Velocity
	}
	return asciigraph.Plot(vs,
		asciigraph.Height(20),
		asciigraph.Width(72),
		asciigraph.Caption("velocity (m/s)"),
	)
}
