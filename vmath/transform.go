package vmath

import "github.com/go-gl/mathgl/mgl32"

// Transform is a decomposed similarity transform: translation, rotation, uniform scale
type Transform struct {
	Disp  Vec3
	Rot   mgl32.Quat
	Scale float32
}

// NewTransform places an unrotated body at disp
func NewTransform(disp Vec3, scale float32) Transform {
	return Transform{Disp: disp, Rot: mgl32.QuatIdent(), Scale: scale}
}

// TransformPoint maps a body-local model point to world space
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Disp.Add(t.Rot.Rotate(p.Mul(t.Scale)))
}

// TransformVector maps a body-local model vector to world space (no translation)
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rot.Rotate(v.Mul(t.Scale))
}

// Rotate applies only the rotation
func (t Transform) Rotate(v Vec3) Vec3 {
	return t.Rot.Rotate(v)
}

// InverseRotate brings a world-oriented vector into the body frame
func (t Transform) InverseRotate(v Vec3) Vec3 {
	return t.Rot.Conjugate().Rotate(v)
}

// Up returns body Z in world space
func (t Transform) Up() Vec3 {
	return t.Rot.Rotate(Vec3{0, 0, 1})
}
