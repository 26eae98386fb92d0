// Package telemetry broadcasts frame point clouds as DetectionEvents to
// in-process client streams, adapted from the teacher's broadcast-channel
// publisher shape. The Publisher starts a gRPC server, but no service is
// registered on it, so no network client can subscribe.
package telemetry

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
)

// DetectionEvent is one broadcastable unit: a point cloud for a simulated
// timestamp, plus the frame index it corresponds to. Events published by
// Publisher.OnFrameChanged carry the frame's raw cloud with FrameIndex 0.
type DetectionEvent struct {
	FrameIndex int
	Timestamp  float64
	Points     []geom.Point
}

// ProtoTimestamp converts the event's simulated timestamp (seconds since
// the source's epoch) to a well-known protobuf Timestamp, the same
// wire-timestamp convention the teacher's frameBundleToProto uses ahead
// of the detection-stream service being generated from a .proto file.
func (e DetectionEvent) ProtoTimestamp() *timestamppb.Timestamp {
	return timestamppb.New(time.Unix(0, int64(e.Timestamp*float64(time.Second))))
}
