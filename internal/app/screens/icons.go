package screens

import "github.com/rook-computer/hdldisplay/internal/render"

// Preloaded asset ids. Sprite n of the battery set lives at AssetBattery+n.
const (
	AssetBattery uint16 = 0x8001
	AssetPairing uint16 = 0x8010
)

// BatteryLevels is the number of battery sprites.
const BatteryLevels = 5

const (
	batteryWidth  = 16
	batteryHeight = 8
)

// BatteryIcons draws the sprite set indexed by the BATT_SPRITE binding.
func BatteryIcons() []*render.Bitmap {
	icons := make([]*render.Bitmap, BatteryLevels)
	for level := range icons {
		icons[level] = batteryIcon(level)
	}
	return icons
}

func batteryIcon(level int) *render.Bitmap {
	b := render.NewBitmap(batteryWidth, batteryHeight)
	body := batteryWidth - 2
	for x := 0; x < body; x++ {
		b.Set(x, 0, true)
		b.Set(x, batteryHeight-1, true)
	}
	for y := 0; y < batteryHeight; y++ {
		b.Set(0, y, true)
		b.Set(body-1, y, true)
	}
	for y := 2; y < batteryHeight-2; y++ {
		b.Set(body, y, true)
		b.Set(body+1, y, true)
	}
	fill := level * (body - 4) / (BatteryLevels - 1)
	for x := 2; x < 2+fill; x++ {
		for y := 2; y < batteryHeight-2; y++ {
			b.Set(x, y, true)
		}
	}
	return b
}
