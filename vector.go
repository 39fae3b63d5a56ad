package lattice

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec3 is a 3D world-space translation
type Vec3 struct {
	X, Y, Z float64
}

// Coordinate is an integer lattice position within a grid
type Coordinate struct {
	X, Y uint32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Extend lifts v into 3D with the given z
func (v Vec2) Extend(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// XY drops the z component
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// WithZ returns v with its z component replaced
func (v Vec3) WithZ(z float64) Vec3 {
	v.Z = z
	return v
}
