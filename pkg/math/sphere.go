package math

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// Merge returns the smallest sphere enclosing both s and other.
// Merging with an empty (zero-radius, zero-center) sphere returns the other
// sphere unchanged, so a zero Sphere works as an accumulator seed.
func (s Sphere) Merge(other Sphere) Sphere {
	if s.Radius == 0 && s.Center.IsZero() {
		return other
	}
	if other.Radius == 0 && other.Center.IsZero() {
		return s
	}

	d := other.Center.Sub(s.Center)
	dist := d.Length()

	// One sphere fully inside the other
	if dist+other.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= other.Radius {
		return other
	}

	radius := (dist + s.Radius + other.Radius) / 2
	center := s.Center
	if dist > 0 {
		center = s.Center.Add(d.Scale((radius - s.Radius) / dist))
	}
	return Sphere{Center: center, Radius: radius}
}

// TransformedBy returns the sphere transformed into the space of m. The
// radius grows by the largest axis scale of m, which keeps the result
// conservative for non-uniform scales.
func (s Sphere) TransformedBy(m Mat4) Sphere {
	return Sphere{
		Center: m.TransformPoint(s.Center),
		Radius: s.Radius * m.MaxAxisScale(),
	}
}
