package gosieterm

import "errors"

var (
	// ErrInvalidDimension is returned for a zero or negative canvas size.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidGeometry is returned for degenerate shapes and faces, e.g. a
	// polygon with fewer than 3 vertices or a face index outside the mesh.
	ErrInvalidGeometry = errors.New("invalid geometry")
)
