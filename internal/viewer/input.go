package viewer

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	wheel                = ebiten.Wheel

	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll

	deviceScale = func() float64 {
		if m := ebiten.Monitor(); m != nil {
			return m.DeviceScaleFactor()
		}
		return 1
	}
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	wh func() (float64, float64),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldWheel := wheel
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	wheel = wh
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		wheel = oldWheel
	}
}

// SetClipboardForTest swaps the system clipboard for the given functions.
func SetClipboardForTest(write func(string) error, read func() (string, error)) func() {
	oldWrite, oldRead := clipboardWrite, clipboardRead
	clipboardWrite, clipboardRead = write, read
	return func() {
		clipboardWrite, clipboardRead = oldWrite, oldRead
	}
}
