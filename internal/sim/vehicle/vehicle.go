// Package vehicle models the simulated ground vehicle: its root pose, the
// transmitter/receiver devices mounted on it, and its recorded trajectory.
package vehicle

import (
	"github.com/banshee-data/velocity.report/internal/sim/device"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
)

// Vehicle is a rigid body carrying a set of transmitter and receiver
// devices, all parented under a single root node so moving the vehicle
// moves every mounted device.
type Vehicle struct {
	name         string
	root         *spatial.Node
	length       float32
	width        float32
	height       float32
	transmitters []*device.Device
	receivers    []*device.Device
	trajectory   []geom.Point
}

// New returns a vehicle with the given root node and dimensions (meters).
// Devices are attached afterward via AddTransmitter/AddReceiver.
func New(name string, root *spatial.Node, length, width, height float32) *Vehicle {
	return &Vehicle{name: name, root: root, length: length, width: width, height: height}
}

func (v *Vehicle) Name() string        { return v.name }
func (v *Vehicle) Root() *spatial.Node { return v.root }
func (v *Vehicle) Length() float32     { return v.length }
func (v *Vehicle) Width() float32      { return v.width }
func (v *Vehicle) Height() float32     { return v.height }

// Transmitters returns the vehicle's mounted transmitter devices in
// attachment order.
func (v *Vehicle) Transmitters() []*device.Device { return v.transmitters }

// Receivers returns the vehicle's mounted receiver devices in attachment
// order; index 0 is the receiver the ADSIL solver treats as collocated
// with every transmitter.
func (v *Vehicle) Receivers() []*device.Device { return v.receivers }

// AddTransmitter appends d to the vehicle's transmitter list. d's node
// should already be parented under v.Root (directly or transitively) so
// its global transform tracks the vehicle's pose.
func (v *Vehicle) AddTransmitter(d *device.Device) {
	v.transmitters = append(v.transmitters, d)
}

// AddReceiver appends d to the vehicle's receiver list.
func (v *Vehicle) AddReceiver(d *device.Device) {
	v.receivers = append(v.receivers, d)
}

// RecordPosition appends the vehicle's current root position to its
// trajectory log. Callers drive this once per simulated step.
func (v *Vehicle) RecordPosition() {
	v.trajectory = append(v.trajectory, v.root.GlobalTransform().Position)
}

// Trajectory returns the recorded sequence of root positions, oldest first.
func (v *Vehicle) Trajectory() []geom.Point {
	return v.trajectory
}
