package vec

// Vec3Float представляет позицию объекта на столе.
// X и Y лежат в плоскости доски, Z - высота над ней.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// ToVec2 проецирует позицию на плоскость доски, отбрасывая Z
func (v Vec3Float) ToVec2() Vec2Float {
	return Vec2Float{X: v.X, Y: v.Y}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}
