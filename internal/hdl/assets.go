package hdl

import (
	"fmt"
	"sort"

	"github.com/rook-computer/hdldisplay/internal/binding"
	"github.com/rook-computer/hdldisplay/internal/render"
)

// AssetSet holds bitmaps preloaded before the layout is parsed. Ids carry
// bit 15 so they never collide with layout element ids.
type AssetSet struct {
	bitmaps map[uint16]*render.Bitmap
}

func NewAssetSet() *AssetSet {
	return &AssetSet{bitmaps: map[uint16]*render.Bitmap{}}
}

func (a *AssetSet) Preload(id uint16, bmp *render.Bitmap) error {
	if id&binding.ReservedBit == 0 {
		return fmt.Errorf("%w: 0x%04x", ErrAssetID, id)
	}
	if bmp == nil {
		return fmt.Errorf("hdl: asset 0x%04x is nil", id)
	}
	a.bitmaps[id] = bmp
	return nil
}

func (a *AssetSet) Bitmap(id uint16) (*render.Bitmap, bool) {
	bmp, ok := a.bitmaps[id]
	return bmp, ok
}

// IDs returns the preloaded ids in ascending order.
func (a *AssetSet) IDs() []uint16 {
	ids := make([]uint16, 0, len(a.bitmaps))
	for id := range a.bitmaps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (a *AssetSet) Len() int { return len(a.bitmaps) }
