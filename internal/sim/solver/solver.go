// Package solver implements the time-of-flight matrix synthesis and
// 4-receiver ADSIL trilateration that turns a filtered point cloud into a
// detection cloud.
package solver

import (
	"math"

	"github.com/banshee-data/velocity.report/internal/sim/device"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
	"github.com/banshee-data/velocity.report/internal/sim/vehicle"
)

// requiredReceiverCount is the number of receivers ADSIL trilateration
// requires: one collocated with the transmitter (index 0) plus three more
// spanning a non-degenerate basis.
const requiredReceiverCount = 4

const epsilon = 1e-6

// Config tunes optional validation the source solver does not perform.
type Config struct {
	// MaxCollocationTolerance, if non-zero, rejects a solve whenever
	// receiver 0 is farther than this distance (meters) from any
	// transmitter. Zero disables the check, matching the source's
	// unvalidated assumption that receiver 0 is collocated with every
	// transmitter.
	MaxCollocationTolerance float32
}

// Solver runs ToF synthesis and ADSIL trilateration against a vehicle's
// mounted devices.
type Solver struct {
	cfg        Config
	solveCount uint64
}

// New returns a solver with the given configuration.
func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// SolveCount returns the number of (Tx, Rx) pairs that produced a ToF
// measurement across every call to Solve so far.
func (s *Solver) SolveCount() uint64 { return s.solveCount }

// Solve prefilters cloud through each transmitter's FOV, then through each
// receiver's FOV on the Tx-filtered set, records the closest point's
// combined Tx+Rx path length into a ToF matrix, and trilaterates a
// detection cloud from rows with exactly requiredReceiverCount valid
// entries. It returns the detection cloud and the ToF matrix it was built
// from. Numeric degeneracies (collinear or coincident receivers, an
// imaginary trilateration solution) are skipped per-transmitter rather
// than surfaced as an error, matching the source's recovery behavior.
func (s *Solver) Solve(v *vehicle.Vehicle, cloud *geom.PointCloud) (*geom.PointCloud, *ToFMatrix, error) {
	result := geom.NewPointCloud(0)

	transmitters := v.Transmitters()
	receivers := v.Receivers()
	if cloud.Empty() || len(transmitters) == 0 {
		return result, NewToFMatrix(len(transmitters), len(receivers)), nil
	}
	if len(receivers) != requiredReceiverCount {
		return nil, nil, &simerr.ConfigurationError{Msg: "ADSIL trilateration requires exactly 4 receivers"}
	}

	if err := s.checkCollocation(transmitters, receivers); err != nil {
		return nil, nil, err
	}

	tofMatrix := NewToFMatrix(len(transmitters), len(receivers))

	for txIndex, tx := range transmitters {
		txPos := tx.Origin()

		inTxFov := tx.PointsInFov(cloud)
		if inTxFov.Empty() {
			continue
		}

		for rxIndex, rx := range receivers {
			rxPos := rx.Origin()

			inRxFov := rx.PointsInFov(inTxFov)
			if inRxFov.Empty() {
				continue
			}

			closest := findClosestPointInSet(inRxFov, txPos, rxPos)
			totalDistance := closest.DistanceTo(txPos) + closest.DistanceTo(rxPos)

			tofMatrix.Set(txIndex, rxIndex, totalDistance)
			s.solveCount++
			result.Append(closest)
		}
	}

	if result.Empty() {
		return result, tofMatrix, nil
	}

	detections := s.solveAdsilTrilateration(tofMatrix, transmitters, receivers)
	return detections, tofMatrix, nil
}

// findClosestPointInSet returns the point in points minimizing the sum of
// its distances to txPos and rxPos. Ties keep the first point seen.
func findClosestPointInSet(points *geom.PointCloud, txPos, rxPos geom.Point) geom.Point {
	minDistance := float32(math.MaxFloat32)
	var closest geom.Point
	for _, p := range points.Points() {
		total := p.DistanceTo(txPos) + p.DistanceTo(rxPos)
		if total < minDistance {
			minDistance = total
			closest = p
		}
	}
	return closest
}

func isValidTofRow(m *ToFMatrix, txIndex int) bool {
	if m.RxCount() != requiredReceiverCount {
		return false
	}
	for rx := 0; rx < requiredReceiverCount; rx++ {
		if m.At(txIndex, rx) <= epsilon {
			return false
		}
	}
	return true
}

// calculateAdsilPositions solves the two candidate trilateration points
// for transmitter txIndex's ToF row, working in a local frame anchored at
// receiver 1 with ex along receiver1->receiver2.
func calculateAdsilPositions(m *ToFMatrix, txIndex int, receivers []*device.Device) (geom.Point, geom.Point, error) {
	r0 := m.At(txIndex, 0) / 2.0
	r1 := m.At(txIndex, 1) - r0
	r2 := m.At(txIndex, 2) - r0
	r3 := m.At(txIndex, 3) - r0

	c1 := receivers[1].Origin()
	c2 := receivers[2].Origin()
	c3 := receivers[3].Origin()

	p1p2 := c2.Sub(c1)
	d := p1p2.Magnitude()
	if d < epsilon {
		return geom.Point{}, geom.Point{}, &simerr.NumericError{Msg: "receivers 1 and 2 are too close together"}
	}
	ex := p1p2.Scale(1.0 / d)

	c1c3 := c3.Sub(c1)
	i := ex.Dot(c1c3)

	temp := c1c3.Sub(ex.Scale(i))
	tempLenSq := temp.MagnitudeSquared()
	if tempLenSq < epsilon {
		return geom.Point{}, geom.Point{}, &simerr.NumericError{Msg: "receivers are collinear"}
	}

	ey := temp.Normalize()
	ez := ex.Cross(ey)
	j := ey.Dot(c1c3)

	x := (r1*r1 - r2*r2 + d*d) / (2.0 * d)
	yNumerator := r1*r1 - r3*r3 + i*i + j*j - 2.0*i*x
	y := yNumerator / (2.0 * j)

	zSquared := r1*r1 - x*x - y*y
	if zSquared < 0 {
		return geom.Point{}, geom.Point{}, &simerr.NumericError{Msg: "invalid trilateration solution"}
	}
	z := float32(math.Sqrt(float64(zSquared)))

	result1 := ex.Scale(x).Add(ey.Scale(y)).Add(ez.Scale(z))
	result2 := ex.Scale(x).Add(ey.Scale(y)).Add(ez.Scale(-z))

	return c1.Add(result1), c1.Add(result2), nil
}

// solveAdsilTrilateration walks every valid ToF row, computes its two
// mirror-candidate positions, and keeps whichever candidates survive the
// transmitter's own FOV filter.
func (s *Solver) solveAdsilTrilateration(m *ToFMatrix, transmitters, receivers []*device.Device) *geom.PointCloud {
	result := geom.NewPointCloud(0)

	for txIndex := 0; txIndex < m.TxCount(); txIndex++ {
		if !isValidTofRow(m, txIndex) {
			continue
		}

		point1, point2, err := calculateAdsilPositions(m, txIndex, receivers)
		if err != nil {
			continue
		}

		candidates := geom.NewPointCloud(2)
		candidates.Append(point1)
		candidates.Append(point2)

		valid := transmitters[txIndex].PointsInFov(candidates)
		if !valid.Empty() {
			result.AppendAll(valid.Points())
		}
	}

	return result
}

// checkCollocation optionally validates that receiver 0 sits within
// MaxCollocationTolerance of every transmitter. It is a no-op when the
// tolerance is zero.
func (s *Solver) checkCollocation(transmitters, receivers []*device.Device) error {
	if s.cfg.MaxCollocationTolerance <= 0 {
		return nil
	}
	r0 := receivers[0].Origin()
	for _, tx := range transmitters {
		if r0.DistanceTo(tx.Origin()) > s.cfg.MaxCollocationTolerance {
			return &simerr.ConfigurationError{Msg: "receiver 0 is not collocated with every transmitter within tolerance"}
		}
	}
	return nil
}
