package hdl

import (
	"errors"
)

// Status codes returned to the host by Build.
const (
	StatusOK              uint8 = 0
	StatusPayloadTooLarge uint8 = 1
	StatusBufferTooSmall  uint8 = 2
	StatusBuildFailed     uint8 = 3
)

var (
	ErrPayloadTooLarge   = errors.New("hdl: layout payload too large")
	ErrBufferTooSmall    = errors.New("hdl: display exceeds buffer capacity")
	ErrLayoutParseFailed = errors.New("hdl: layout parse failed")
	ErrNotBuilt          = errors.New("hdl: update before successful build")
	ErrAssetID           = errors.New("hdl: asset id must have bit 15 set")
)

// StatusCode maps a Build error onto the host status byte. Errors that do
// not belong to a precondition are reported as interpreter failures.
func StatusCode(err error) uint8 {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrPayloadTooLarge):
		return StatusPayloadTooLarge
	case errors.Is(err, ErrBufferTooSmall):
		return StatusBufferTooSmall
	default:
		return StatusBuildFailed
	}
}
