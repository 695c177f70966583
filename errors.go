package fixedbuf

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrBufferFull is returned by Push when every slot is already occupied.
	// The buffer is left unchanged.
	ErrBufferFull = errors.New("fixedbuf: buffer full")

	// ErrInvalidCapacity is the panic value of New for a negative capacity.
	ErrInvalidCapacity = errors.New("fixedbuf: invalid capacity")

	// ErrRegionTooLarge is the panic value of New when capacity*sizeof(T)
	// overflows or exceeds the largest region the runtime can hand out.
	ErrRegionTooLarge = errors.New("fixedbuf: region too large")
)

// IndexError is the panic value raised by Get and GetMut for an index
// outside [0, Length). It is a caller bug, never a data condition.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("fixedbuf: index out of range [%d] with length %d", e.Index, e.Length)
}

const errUseAfterRelease = "fixedbuf: use after Release()"
