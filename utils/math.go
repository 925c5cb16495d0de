package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// EulerXYZToQuat builds rotation equal to RotX(v.x) * RotY(v.y) * RotZ(v.z)
// input in radians
func EulerXYZToQuat(v mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(v[0], mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(v[1], mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(v[2], mgl32.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

func RadiansToDegreeV3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.RadToDeg(v[0]), mgl32.RadToDeg(v[1]), mgl32.RadToDeg(v[2])}
}

func Vec3To64(v mgl32.Vec3) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}
