package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground     = tcell.NewRGBColor(10, 10, 14)
	RgbBackgroundLit  = tcell.NewRGBColor(60, 52, 30)
	RgbText           = tcell.NewRGBColor(200, 200, 200)
	RgbTextDim        = tcell.NewRGBColor(110, 110, 110)
	RgbTitle          = tcell.NewRGBColor(255, 255, 255)
	RgbDoorFrame      = tcell.NewRGBColor(120, 80, 40)
	RgbDoorLeaf       = tcell.NewRGBColor(90, 60, 30)
	RgbDoorGap        = tcell.NewRGBColor(0, 0, 0)
	RgbLightOn        = tcell.NewRGBColor(255, 220, 120)
	RgbLightOff       = tcell.NewRGBColor(60, 60, 90)
	RgbClearMeter     = tcell.NewRGBColor(80, 200, 120)
	RgbCleared        = tcell.NewRGBColor(0, 255, 100)
	RgbMeterEmpty     = tcell.NewRGBColor(40, 40, 40)
	RgbMonster        = tcell.NewRGBColor(220, 30, 30)
	RgbScareFlash     = tcell.NewRGBColor(255, 0, 0)
	RgbGameOver       = tcell.NewRGBColor(150, 0, 0)
	RgbStatusBar      = tcell.NewRGBColor(30, 30, 40)
	RgbSensorActiveBg = tcell.NewRGBColor(144, 238, 144)
	RgbKeyboardBg     = tcell.NewRGBColor(135, 206, 250)
	RgbStatusText     = tcell.NewRGBColor(0, 0, 0)
)

// stageColor grades from cold to hot as the monster approaches
func stageColor(idx, count int) tcell.Color {
	if count <= 1 {
		return RgbMonster
	}
	t := float64(idx) / float64(count-1)
	r := int32(120 + 135*t)
	g := int32(120 * (1 - t))
	return tcell.NewRGBColor(r, g, g)
}
