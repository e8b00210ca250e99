package gosieterm

// Overlaps reports whether two shapes write to any common cell.
func Overlaps(a, b Shape) (bool, error) {
	return WillOverlap(a, b, Vec2{})
}

// WillOverlap reports whether b, moved by offset, would share a cell with a.
func WillOverlap(a, b Shape, offset Vec2) (bool, error) {
	pa, err := Pixels(a)
	if err != nil {
		return false, err
	}
	pb, err := Pixels(b)
	if err != nil {
		return false, err
	}
	occupied := make(map[Vec2]struct{}, len(pa))
	for _, p := range pa {
		occupied[p.Pos] = struct{}{}
	}
	for _, p := range pb {
		if _, hit := occupied[p.Pos.Add(offset)]; hit {
			return true, nil
		}
	}
	return false, nil
}
