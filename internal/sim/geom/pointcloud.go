package geom

// PointCloud is an ordered, non-deduplicated sequence of points.
type PointCloud struct {
	points []Point
}

// NewPointCloud returns an empty cloud with capacity pre-allocated for n points.
func NewPointCloud(n int) *PointCloud {
	return &PointCloud{points: make([]Point, 0, n)}
}

// Append adds a single point to the cloud.
func (c *PointCloud) Append(p Point) {
	c.points = append(c.points, p)
}

// AppendAll adds every point in pts to the cloud, preserving order.
func (c *PointCloud) AppendAll(pts []Point) {
	c.points = append(c.points, pts...)
}

// Merge returns a new cloud containing this cloud's points followed by other's.
func (c *PointCloud) Merge(other *PointCloud) *PointCloud {
	merged := NewPointCloud(c.Len() + other.Len())
	merged.AppendAll(c.points)
	merged.AppendAll(other.points)
	return merged
}

// Points returns the underlying slice. Callers must not mutate it in place
// if the cloud is shared; treat it as read-only iteration support.
func (c *PointCloud) Points() []Point {
	return c.points
}

// Len returns the number of points in the cloud.
func (c *PointCloud) Len() int {
	if c == nil {
		return 0
	}
	return len(c.points)
}

// Empty reports whether the cloud has zero points.
func (c *PointCloud) Empty() bool {
	return c.Len() == 0
}
