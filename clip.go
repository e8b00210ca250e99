package gosieterm

const minNear = 1e-6

func (c *Camera) nearDist() float64 {
	return max(c.Near, minNear)
}

// intersectNear returns the point on segment ab at the near plane. When the
// segment is parallel to the plane, a is returned.
func intersectNear(a, b Vec3, near float64) Vec3 {
	da, db := -a.Z(), -b.Z()
	if da == db {
		return a
	}
	t := (da - near) / (da - db)
	return a.Add(b.Sub(a).Mul(t))
}

// clipPolygonNear keeps the part of a view space polygon at or beyond the
// near plane (Sutherland-Hodgman against a single plane).
func clipPolygonNear(points []Vec3, near float64) []Vec3 {
	if len(points) == 0 {
		return []Vec3{}
	}
	out := make([]Vec3, 0, len(points)+2)
	prev := points[len(points)-1]
	prevIn := -prev.Z() >= near
	for _, cur := range points {
		curIn := -cur.Z() >= near
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersectNear(prev, cur, near), cur)
		case !curIn && prevIn:
			out = append(out, intersectNear(prev, cur, near))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// clipSegmentNear returns the visible part of a view space segment.
func clipSegmentNear(a, b Vec3, near float64) (Vec3, Vec3, bool) {
	aIn, bIn := -a.Z() >= near, -b.Z() >= near
	switch {
	case aIn && bIn:
		return a, b, true
	case aIn:
		return a, intersectNear(a, b, near), true
	case bIn:
		return intersectNear(a, b, near), b, true
	}
	return a, b, false
}
