// Package config loads scene, vehicle, and device configuration from
// JSON, converting wire-format degrees to the radians the simulator core
// uses internally exactly once, at this boundary.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/velocity.report/internal/security"
	"github.com/banshee-data/velocity.report/internal/sim/device"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/scene"
	"github.com/banshee-data/velocity.report/internal/sim/shape"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
	"github.com/banshee-data/velocity.report/internal/sim/vehicle"
)

const maxConfigFileSize = 1 * 1024 * 1024 // 1MB, matching the teacher's tuning-file guard

// ResourceRootEnvVar is the environment variable that overrides the base
// directory relative frame/scene paths are resolved against.
const ResourceRootEnvVar = "ADSILSIM_RESOURCE_ROOT"

// defaultResourceRoot is used when ResourceRootEnvVar is unset.
const defaultResourceRoot = "."

// EnvResourceRoot returns ADSILSIM_RESOURCE_ROOT, or defaultResourceRoot
// if it is unset.
func EnvResourceRoot() string {
	if root := os.Getenv(ResourceRootEnvVar); root != "" {
		return root
	}
	return defaultResourceRoot
}

type wireVec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (v wireVec3) point() geom.Point   { return geom.Point{X: v.X, Y: v.Y, Z: v.Z} }
func (v wireVec3) radians() geom.Vector {
	toRad := func(deg float32) float32 { return deg * float32(math.Pi) / 180 }
	return geom.Vector{X: toRad(v.X), Y: toRad(v.Y), Z: toRad(v.Z)}
}

type wireDevice struct {
	Name              string    `json:"name"`
	Position          wireVec3  `json:"position"`
	Origin            *wireVec3 `json:"origin"`
	Orientation       wireVec3  `json:"orientation"`
	HorizontalFovDeg  float32   `json:"horizontal_fov_deg"`
	VerticalFovDeg    float32   `json:"vertical_fov_deg"`
	Range             float32   `json:"range"`
}

func (w wireDevice) position() wireVec3 {
	if w.Origin != nil {
		return *w.Origin
	}
	return w.Position
}

type wireShape struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Origin      wireVec3 `json:"origin"`
	Orientation wireVec3 `json:"orientation"`
	Dimension   float32  `json:"dimension"`
	Height      float32  `json:"height"`
	Radius      float32  `json:"radius"`
}

type wireVehicle struct {
	Origin       wireVec3  `json:"origin"`
	Orientation  wireVec3  `json:"orientation"`
	Dimension    struct {
		Length float32 `json:"length"`
		Width  float32 `json:"width"`
		Height float32 `json:"height"`
	} `json:"dimension"`
	Transmitters []wireDevice `json:"transmitters"`
	Receivers    []wireDevice `json:"receivers"`
}

type wireScene struct {
	Vehicle wireVehicle `json:"vehicle"`
	Shapes  []wireShape `json:"shapes"`
}

// LoadScene reads and validates a scene configuration file, building a
// vehicle with its mounted devices (each parented under the vehicle's
// root node) and a Scene wrapping it plus any static shapes. path must
// have a .json extension and be no larger than maxConfigFileSize.
func LoadScene(path string) (*scene.Scene, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("scene config must have .json extension, got %q", ext)}
	}

	if root := EnvResourceRoot(); root != defaultResourceRoot {
		if err := security.ValidatePathWithinDirectory(cleanPath, root); err != nil {
			return nil, &simerr.ConfigurationError{Msg: err.Error()}
		}
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, &simerr.IoError{Op: "stat", Path: cleanPath, Err: err}
	}
	if info.Size() > maxConfigFileSize {
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("scene config too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)}
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, &simerr.IoError{Op: "read", Path: cleanPath, Err: err}
	}

	return decodeScene(data)
}

// decodeScene unmarshals raw scene JSON and builds a Scene from it. Used
// by both LoadScene and LoadSceneFromURL so local and remote configs go
// through identical validation.
func decodeScene(data []byte) (*scene.Scene, error) {
	var wire wireScene
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &simerr.ParseError{Field: "scene", Err: err}
	}

	return buildScene(wire)
}

func buildScene(wire wireScene) (*scene.Scene, error) {
	wv := wire.Vehicle
	root := spatial.NewNode(spatial.Transform{Position: wv.Origin.point(), Orientation: wv.Orientation.radians()})
	v := vehicle.New("vehicle", root, wv.Dimension.Length, wv.Dimension.Width, wv.Dimension.Height)

	for _, wd := range wv.Transmitters {
		d, err := buildDevice(wd, root)
		if err != nil {
			return nil, err
		}
		v.AddTransmitter(d)
	}
	for _, wd := range wv.Receivers {
		d, err := buildDevice(wd, root)
		if err != nil {
			return nil, err
		}
		v.AddReceiver(d)
	}

	s := scene.New(v)
	for _, ws := range wire.Shapes {
		sh, err := buildShape(ws)
		if err != nil {
			return nil, err
		}
		s.AddShape(sh)
	}
	return s, nil
}

func buildDevice(wd wireDevice, parent *spatial.Node) (*device.Device, error) {
	if wd.HorizontalFovDeg <= 0 || wd.HorizontalFovDeg >= 360 {
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("device %q: horizontal_fov_deg must be in (0, 360), got %v", wd.Name, wd.HorizontalFovDeg)}
	}
	if wd.VerticalFovDeg <= 0 || wd.VerticalFovDeg >= 360 {
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("device %q: vertical_fov_deg must be in (0, 360), got %v", wd.Name, wd.VerticalFovDeg)}
	}
	if wd.Range <= 0 {
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("device %q: range must be positive, got %v", wd.Name, wd.Range)}
	}

	pos := wd.position()
	node := spatial.NewNode(spatial.Transform{Position: pos.point(), Orientation: wd.Orientation.radians()})
	if err := node.SetParent(parent); err != nil {
		return nil, &simerr.StateError{Msg: err.Error()}
	}

	toRad := func(deg float32) float32 { return deg * float32(math.Pi) / 180 }
	return device.NewDevice(wd.Name, node, toRad(wd.HorizontalFovDeg), toRad(wd.VerticalFovDeg), wd.Range), nil
}

func buildShape(ws wireShape) (shape.Shape, error) {
	node := spatial.NewNode(spatial.Transform{Position: ws.Origin.point(), Orientation: ws.Orientation.radians()})
	switch ws.Type {
	case "Cube":
		return shape.NewCube(ws.Name, node, ws.Dimension), nil
	case "Cylinder":
		return shape.NewCylinder(ws.Name, node, ws.Radius, ws.Height), nil
	default:
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("unknown shape type %q", ws.Type)}
	}
}
