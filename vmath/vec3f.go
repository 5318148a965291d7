package vmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the float32 vector used by all physics paths
type Vec3 = mgl32.Vec3

// singularDet is the determinant magnitude below which a 3x3 matrix is treated as singular
const singularDet = 1e-12

// Sign returns -1, 0 or 1
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Powf(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }
func Expf(x float32) float32    { return float32(math.Exp(float64(x))) }
func Lnf(x float32) float32     { return float32(math.Log(float64(x))) }

// LenSq returns the squared magnitude
func LenSq(v Vec3) float32 {
	return v.Dot(v)
}

// Skew returns the cross-product matrix of r: Skew(r)·v == r×v
func Skew(r Vec3) mgl32.Mat3 {
	// Column-major
	return mgl32.Mat3{
		0, r[2], -r[1],
		-r[2], 0, r[0],
		r[1], -r[0], 0,
	}
}

// MustInvert inverts m, panicking on a singular matrix
// A singular inertia tensor means corrupt car data, which is not recoverable
func MustInvert(m mgl32.Mat3) mgl32.Mat3 {
	det := m.Det()
	if math.Abs(float64(det)) < singularDet {
		panic(fmt.Sprintf("vmath: singular matrix %v (det=%g)", m, det))
	}
	return m.Inv()
}

// QuatFromAngularVelocity returns the rotation of angular velocity w over dt
// Returns identity for zero rotation
func QuatFromAngularVelocity(w Vec3, dt float32) mgl32.Quat {
	mag := w.Len()
	angle := mag * dt
	if mag == 0 || angle == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(angle, w.Mul(1/mag))
}
