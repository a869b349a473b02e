package asvswarm

// waypointProximityMargin is the planar distance (m) within which a
// waypoint is considered reached (§4.7).
const waypointProximityMargin = 5.0

// WaypointList is an ordered polyline of 2-D target coordinates (z is
// ignored for proximity checks) together with the index of the waypoint
// currently being steered towards.
type WaypointList struct {
	points []Vec3
	index  int
}

// NewWaypointList builds a waypoint list from the given points, starting at
// index 0. An empty list is valid and is immediately Done.
func NewWaypointList(points []Vec3) *WaypointList {
	cp := make([]Vec3, len(points))
	copy(cp, points)
	return &WaypointList{points: cp}
}

// Current returns the waypoint currently being steered towards and true, or
// the zero value and false if the list has been exhausted.
func (w *WaypointList) Current() (Vec3, bool) {
	if w.Done() {
		return Vec3{}, false
	}
	return w.points[w.index], true
}

// Done reports whether every waypoint has been reached.
func (w *WaypointList) Done() bool {
	return w.index >= len(w.points)
}

// Index returns the index of the current waypoint.
func (w *WaypointList) Index() int { return w.index }

// Len returns the number of waypoints in the list.
func (w *WaypointList) Len() int { return len(w.points) }

// Advance checks whether cog lies within waypointProximityMargin (planar)
// of the current waypoint and, if so, advances to the next one. Returns
// true if the current waypoint was reached (and the index advanced).
func (w *WaypointList) Advance(cog Vec3) bool {
	wp, ok := w.Current()
	if !ok {
		return false
	}
	if cog.Sub(wp).Norm2D() > waypointProximityMargin {
		return false
	}
	w.index++
	return true
}
