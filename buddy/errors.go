package buddy

import "errors"

var (
	// ErrBadRegion indicates a region id outside the table or a slot that
	// has not been configured.
	ErrBadRegion = errors.New("buddy: bad region")

	// ErrTooBig indicates a request larger than the region's total size.
	ErrTooBig = errors.New("buddy: request exceeds region size")

	// ErrNoSpace indicates that no free block of the needed class exists,
	// either because the region is exhausted or because free space is
	// fragmented into smaller non-buddy blocks. The two causes are not
	// distinguished.
	ErrNoSpace = errors.New("buddy: no free block large enough")

	// ErrBadAddr indicates a free of an address outside the region or not
	// aligned to the minimum block size.
	ErrBadAddr = errors.New("buddy: address not in region")

	// ErrBadConfig indicates region sizes that are zero, not powers of two,
	// or a minimum block size larger than the total size.
	ErrBadConfig = errors.New("buddy: invalid region configuration")
)
