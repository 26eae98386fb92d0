// Package frameio decodes recorded frame files and scans a directory of
// them into the sequence a frame player steps through.
package frameio

import (
	"encoding/json"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

// Frame is one recorded instant: a timestamp, a point cloud, the path it
// was loaded from, and optional IMU-style readings.
type Frame struct {
	Timestamp          float64
	Cloud              *geom.PointCloud
	FilePath           string
	LinearAcceleration *geom.Vector
	AngularVelocity    *geom.Vector
}

// wirePoint accepts either `{"x":.., "y":.., "z":..}` or `[x, y, z]` for a
// single 3-vector, matching both shapes the wire format allows.
type wirePoint struct {
	X, Y, Z float32
}

func (p *wirePoint) UnmarshalJSON(data []byte) error {
	var triple [3]float32
	if err := json.Unmarshal(data, &triple); err == nil {
		p.X, p.Y, p.Z = triple[0], triple[1], triple[2]
		return nil
	}

	var obj struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
		Z float32 `json:"z"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.X, p.Y, p.Z = obj.X, obj.Y, obj.Z
	return nil
}

// wireFrame mirrors the on-disk JSON shape described by the frame file
// layout: timestamp plus a cloud of points, with optional IMU readings.
type wireFrame struct {
	Timestamp          float64     `json:"timestamp"`
	Cloud              []wirePoint `json:"cloud"`
	LinearAcceleration *wirePoint  `json:"linear_acceleration,omitempty"`
	AngularVelocity    *wirePoint  `json:"angular_velocity,omitempty"`
}

// DecodeFrame parses raw JSON bytes into a Frame. path is recorded as the
// Frame's FilePath regardless of what (if anything) the JSON itself carries.
func DecodeFrame(raw []byte, path string) (*Frame, error) {
	var wf wireFrame
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, &simerr.ParseError{Field: "frame", Err: err}
	}

	cloud := geom.NewPointCloud(len(wf.Cloud))
	for _, p := range wf.Cloud {
		cloud.Append(geom.Point{X: p.X, Y: p.Y, Z: p.Z})
	}

	frame := &Frame{Timestamp: wf.Timestamp, Cloud: cloud, FilePath: path}
	if wf.LinearAcceleration != nil {
		v := geom.Vector{X: wf.LinearAcceleration.X, Y: wf.LinearAcceleration.Y, Z: wf.LinearAcceleration.Z}
		frame.LinearAcceleration = &v
	}
	if wf.AngularVelocity != nil {
		v := geom.Vector{X: wf.AngularVelocity.X, Y: wf.AngularVelocity.Y, Z: wf.AngularVelocity.Z}
		frame.AngularVelocity = &v
	}
	return frame, nil
}

// EmptyFrame returns the empty-sentinel frame used for window slots
// outside [0, N).
func EmptyFrame() *Frame {
	return &Frame{Cloud: geom.NewPointCloud(0)}
}
