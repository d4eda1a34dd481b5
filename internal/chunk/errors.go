package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is wrapped by every *BoundsError.
	ErrOutOfBounds = errors.New("chunk: position out of bounds")
	// ErrDimensionMismatch is returned when a cell count does not match the accessor's CubeLen.
	ErrDimensionMismatch = errors.New("chunk: dimension mismatch")
	// ErrNotPlainData is the panic value for cell types rejected by the plain-data check.
	ErrNotPlainData = errors.New("chunk: cell type is not plain data")
)

// BoundsError reports an access outside [0, SideLen) on at least one axis.
type BoundsError struct {
	Pos     Pos
	SideLen int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("chunk: position %v out of bounds for side length %d", e.Pos, e.SideLen)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }
