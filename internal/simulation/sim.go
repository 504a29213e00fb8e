// Package simulation animates a truck along the straight segment between
// two resolved coordinates. It is a cosmetic simulation in plain degree
// space, not a routing engine: positions are linear blends and checkpoint
// proximity is raw Euclidean distance, not geodesic.
package simulation

import "math"

const (
	// Steps is the number of discrete ticks in one run.
	Steps = 100
	// ClearRadius is the degree-space distance under which a checkpoint
	// counts as reached.
	ClearRadius = 0.5
)

// Point is a coordinate pair in plain degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Checkpoint is a simulated waypoint along the segment.
type Checkpoint struct {
	Pos     Point `json:"pos"`
	Cleared bool  `json:"cleared"`
}

// Checkpoints places the two fixed waypoints at 1/3 and 2/3 of the way
// along the segment, both pending.
func Checkpoints(start, end Point) []Checkpoint {
	return []Checkpoint{
		{Pos: Point{
			Lat: (2*start.Lat + end.Lat) / 3,
			Lon: (2*start.Lon + end.Lon) / 3,
		}},
		{Pos: Point{
			Lat: (start.Lat + 2*end.Lat) / 3,
			Lon: (start.Lon + 2*end.Lon) / 3,
		}},
	}
}

// Run is one animation session. Not safe for concurrent use; the runner
// owns it for the duration of the run.
type Run struct {
	start, end  Point
	checkpoints []Checkpoint
	step        int
}

func NewRun(start, end Point) *Run {
	return &Run{
		start:       start,
		end:         end,
		checkpoints: Checkpoints(start, end),
	}
}

// Step returns the current tick, 0..Steps.
func (r *Run) Step() int { return r.step }

// Done reports whether the run reached its final tick.
func (r *Run) Done() bool { return r.step >= Steps }

// Position is the truck location at the current step:
// start + (end-start) * step/Steps.
func (r *Run) Position() Point {
	f := float64(r.step) / float64(Steps)
	return Point{
		Lat: r.start.Lat + (r.end.Lat-r.start.Lat)*f,
		Lon: r.start.Lon + (r.end.Lon-r.start.Lon)*f,
	}
}

// Advance moves one tick and marks checkpoints within ClearRadius of the
// truck as cleared. Clearing is irreversible for the rest of the run.
// Returns false once the run is finished.
func (r *Run) Advance() bool {
	if r.Done() {
		return false
	}
	r.step++

	pos := r.Position()
	for i := range r.checkpoints {
		if r.checkpoints[i].Cleared {
			continue
		}
		if dist(pos, r.checkpoints[i].Pos) < ClearRadius {
			r.checkpoints[i].Cleared = true
		}
	}
	return !r.Done()
}

// Frame is one streamed animation state.
type Frame struct {
	Step        int          `json:"step"`
	Truck       Point        `json:"truck"`
	Checkpoints []Checkpoint `json:"checkpoints"`
	Done        bool         `json:"done"`
}

// Snapshot copies the current state for streaming.
func (r *Run) Snapshot() Frame {
	cps := make([]Checkpoint, len(r.checkpoints))
	copy(cps, r.checkpoints)
	return Frame{
		Step:        r.step,
		Truck:       r.Position(),
		Checkpoints: cps,
		Done:        r.Done(),
	}
}

func dist(a, b Point) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
}
