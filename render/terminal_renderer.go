package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/engine"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/threat"
)

// TerminalRenderer draws engine snapshots to a tcell screen
type TerminalRenderer struct {
	screen     tcell.Screen
	width      int
	height     int
	openBuffer int
}

// NewTerminalRenderer creates a renderer sized to the screen
// openBuffer scales the rotation gauge
func NewTerminalRenderer(screen tcell.Screen, openBuffer int) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen:     screen,
		width:      w,
		height:     h,
		openBuffer: max(openBuffer, 1),
	}
}

// UpdateDimensions is called on terminal resize
func (r *TerminalRenderer) UpdateDimensions(width, height int) {
	r.width = width
	r.height = height
	r.screen.Sync()
}

// RenderFrame renders the entire frame from one snapshot
func (r *TerminalRenderer) RenderFrame(snap *engine.Snapshot, muted bool) {
	if snap == nil {
		return
	}

	bg := RgbBackground
	if snap.Light.On {
		bg = RgbBackgroundLit
	}
	defaultStyle := tcell.StyleDefault.Background(bg).Foreground(RgbText)
	r.screen.SetStyle(defaultStyle)
	r.screen.Clear()

	// Scare frames own the whole screen
	if snap.Threat.Visual.Scare || snap.Threat.Phase == threat.PhaseFlashOn {
		r.drawScare()
		r.screen.Show()
		return
	}

	r.drawTitle(snap, defaultStyle)

	top := parameter.TopMargin + 1
	// Door is hidden while the jumpscare runs
	if snap.Threat.Stage != threat.Jumpscare {
		r.drawDoor(snap.Door, parameter.LeftMargin, top, defaultStyle)
	}

	panelX := parameter.LeftMargin + parameter.DoorPanelWidth + 4
	y := top
	y = r.drawLight(snap.Light, panelX, y, defaultStyle)
	y = r.drawDoorStatus(snap.Door, panelX, y+1, defaultStyle)
	y = r.drawThreat(snap.Threat, panelX, y+1, defaultStyle)
	r.drawRooms(snap.Room, panelX, y+1, defaultStyle)

	if snap.GameOver {
		r.drawGameOver(defaultStyle)
	}

	r.drawStatusBar(snap, muted)
	r.screen.Show()
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	if y < 0 || y >= r.height {
		return x
	}
	for _, ch := range text {
		if x >= r.width {
			break
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func (r *TerminalRenderer) drawTitle(snap *engine.Snapshot, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbTitle).Bold(true)
	x := r.drawText(0, 0, " NIGHT DOOR ", style)

	room := snap.Room
	label := fmt.Sprintf(" room %d/%d  %s", room.Index+1, room.Count, room.Name)
	if room.Safe {
		label += " [safe]"
	}
	x = r.drawText(x, 0, label, defaultStyle)

	elapsed := fmt.Sprintf("%6.1fs ", snap.Elapsed.Seconds())
	r.drawText(max(x+1, r.width-len(elapsed)), 0, elapsed, defaultStyle.Foreground(RgbTextDim))
}

// drawDoor draws the frame with the leaf swung open in proportion to rotation
func (r *TerminalRenderer) drawDoor(d door.State, x0, y0 int, defaultStyle tcell.Style) {
	w, h := parameter.DoorPanelWidth, parameter.DoorPanelHeight
	frame := defaultStyle.Foreground(RgbDoorFrame)
	leaf := defaultStyle.Foreground(RgbDoorLeaf)
	gap := defaultStyle.Background(RgbDoorGap)

	for x := 0; x < w; x++ {
		r.screen.SetContent(x0+x, y0, '▄', nil, frame)
	}
	for y := 1; y <= h; y++ {
		r.screen.SetContent(x0, y0+y, '█', nil, frame)
		r.screen.SetContent(x0+w-1, y0+y, '█', nil, frame)
	}

	inner := w - 2
	opening := inner * clampInt(d.RotationValue, 0, r.openBuffer) / r.openBuffer
	for y := 1; y <= h; y++ {
		for x := 0; x < inner; x++ {
			cellX := x0 + 1 + x
			if x < opening {
				r.screen.SetContent(cellX, y0+y, ' ', nil, gap)
			} else {
				r.screen.SetContent(cellX, y0+y, '▓', nil, leaf)
			}
		}
	}
	// Knob on the leaf edge
	if opening < inner {
		r.screen.SetContent(x0+1+opening, y0+h/2+1, 'o', nil, leaf.Foreground(RgbLightOn))
	}
}

func (r *TerminalRenderer) drawLight(l engine.LightState, x, y int, defaultStyle tcell.Style) int {
	if l.On {
		r.drawText(x, y, "● LIGHT ON", defaultStyle.Foreground(RgbLightOn).Bold(true))
	} else {
		r.drawText(x, y, "○ DARK", defaultStyle.Foreground(RgbLightOff))
	}
	return y + 1
}

func (r *TerminalRenderer) drawDoorStatus(d door.State, x, y int, defaultStyle tcell.Style) int {
	status := d.Status.String()
	if d.Slammed && d.Status == door.Closed {
		status += " (slammed)"
	}
	r.drawText(x, y, fmt.Sprintf("door   %-18s rot %d", status, d.RotationValue), defaultStyle)
	y++

	label := "clear  "
	end := r.drawText(x, y, label, defaultStyle)
	if d.Cleared {
		r.drawMeter(end, y, 1, 1, RgbCleared, defaultStyle)
		r.drawText(end+parameter.MeterWidth+1, y, "CLEARED", defaultStyle.Foreground(RgbCleared).Bold(true))
	} else {
		r.drawMeter(end, y, int64(d.OpenTime), int64(d.ClearTimeThreshold), RgbClearMeter, defaultStyle)
		r.drawText(end+parameter.MeterWidth+1, y, fmtDuration(d.OpenTime)+"/"+fmtDuration(d.ClearTimeThreshold), defaultStyle.Foreground(RgbTextDim))
	}
	return y + 1
}

func (r *TerminalRenderer) drawThreat(t threat.Snapshot, x, y int, defaultStyle tcell.Style) int {
	stages := []threat.Stage{threat.Far, threat.Near, threat.Door}
	end := r.drawText(x, y, "threat ", defaultStyle)
	for i, s := range stages {
		style := defaultStyle.Foreground(RgbTextDim)
		if t.Summoned && t.Stage == s {
			style = defaultStyle.Foreground(tcell.ColorBlack).Background(stageColor(i, len(stages))).Bold(true)
		}
		end = r.drawText(end, y, " "+s.String()+" ", style) + 1
	}
	y++

	r.drawText(x, y, fmt.Sprintf("mistakes %d  flashes %d", t.Mistakes, t.FlashesUsed), defaultStyle)
	y++

	switch {
	case t.Stage == threat.Jumpscare:
		r.drawText(x, y, "!!! "+t.Phase.String(), defaultStyle.Foreground(RgbScareFlash).Bold(true))
	case t.Visual.Active:
		r.drawText(x, y, "something is in the room", defaultStyle.Foreground(RgbMonster))
		if t.HasDistance {
			y++
			r.drawText(x, y, fmt.Sprintf("%.1fm from the door, facing %.0f°", t.DoorDistance, t.Heading), defaultStyle.Foreground(RgbTextDim))
		}
	case !t.ActiveInRoom:
		r.drawText(x, y, "quiet", defaultStyle.Foreground(RgbTextDim))
	}
	return y + 1
}

func (r *TerminalRenderer) drawRooms(room engine.RoomState, x, y int, defaultStyle tcell.Style) {
	end := r.drawText(x, y, "rooms  ", defaultStyle)
	for i, cleared := range room.Cleared {
		ch := '□'
		style := defaultStyle.Foreground(RgbTextDim)
		if cleared {
			ch = '■'
			style = defaultStyle.Foreground(RgbCleared)
		}
		if i == room.Index {
			style = style.Reverse(true)
		}
		r.screen.SetContent(end, y, ch, nil, style)
		end += 2
	}
	r.drawText(end, y, fmt.Sprintf(" visits %d", room.Visits), defaultStyle.Foreground(RgbTextDim))
}

func (r *TerminalRenderer) drawMeter(x, y int, value, total int64, color tcell.Color, defaultStyle tcell.Style) {
	filled := 0
	if total > 0 {
		filled = int(int64(parameter.MeterWidth) * min(max(value, 0), total) / total)
	}
	for i := 0; i < parameter.MeterWidth; i++ {
		style := defaultStyle.Foreground(RgbMeterEmpty)
		if i < filled {
			style = defaultStyle.Foreground(color)
		}
		r.screen.SetContent(x+i, y, '█', nil, style)
	}
}

func (r *TerminalRenderer) drawScare() {
	style := tcell.StyleDefault.Background(RgbScareFlash).Foreground(tcell.ColorBlack)
	r.screen.Fill(' ', style)
	msg := "  ▓▓  BEHIND YOU  ▓▓  "
	r.drawText((r.width-len([]rune(msg)))/2, r.height/2, msg, style.Bold(true))
}

func (r *TerminalRenderer) drawGameOver(defaultStyle tcell.Style) {
	style := defaultStyle.Background(RgbGameOver).Foreground(RgbTitle).Bold(true)
	msg := "  GAME OVER  press r to restart  "
	r.drawText((r.width-len([]rune(msg)))/2, r.height/2, msg, style)
}

func (r *TerminalRenderer) drawStatusBar(snap *engine.Snapshot, muted bool) {
	y := r.height - parameter.BottomMargin
	base := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbText)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, base)
	}

	mode, bg := parameter.KeyboardStr, RgbKeyboardBg
	if snap.SensorActive {
		mode, bg = parameter.SensorStr, RgbSensorActiveBg
	}
	x := r.drawText(0, y, mode, base.Foreground(RgbStatusText).Background(bg))

	audio := parameter.AudioStr
	if muted {
		audio = parameter.MutedStr
	}
	x = r.drawText(x+1, y, audio, base)
	x = r.drawText(x+1, y, parameter.HelpText, base.Foreground(RgbTextDim))

	if snap.QueueDropped > 0 {
		drop := fmt.Sprintf(" dropped %d ", snap.QueueDropped)
		r.drawText(max(x+1, r.width-len(drop)), y, drop, base.Foreground(RgbMonster))
	}
}

func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
