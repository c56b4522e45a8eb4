package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a world-space placement: room anchors and the monster visual
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose builds a pose from a position and a yaw in degrees around +Y
func NewPose(position mgl64.Vec3, yawDeg float64) Pose {
	return Pose{Position: position, Orientation: YawQuat(yawDeg)}
}

// YawQuat returns the rotation of yawDeg degrees around the up axis
func YawQuat(yawDeg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yawDeg), mgl64.Vec3{0, 1, 0})
}

// Yaw returns the heading of q in degrees, in (-180, 180]
func Yaw(q mgl64.Quat) float64 {
	fwd := q.Rotate(mgl64.Vec3{0, 0, 1})
	return mgl64.RadToDeg(math.Atan2(fwd.X(), fwd.Z()))
}

// ApproxEqual compares position and orientation with mgl64 epsilon
func (p Pose) ApproxEqual(o Pose) bool {
	return p.Position.ApproxEqual(o.Position) && p.Orientation.ApproxEqual(o.Orientation)
}

// IsZero reports an unset pose (zero quaternion is not a valid rotation)
func (p Pose) IsZero() bool {
	return p.Orientation.W == 0 && p.Orientation.V == (mgl64.Vec3{}) && p.Position == (mgl64.Vec3{})
}

// Distance returns the straight-line distance between two poses
func Distance(a, b Pose) float64 {
	return a.Position.Sub(b.Position).Len()
}
