package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tilejump/internal/core"
)

// KeyState reports the state of a key. The game passes ebiten.IsKeyPressed
// and inpututil.IsKeyJustPressed.
type KeyState func(ebiten.Key) bool

// heldKeys are polled every tick; the action stays set while any key is down.
var heldKeys = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionJump:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
	core.ActionShoot: {ebiten.KeyShiftLeft, ebiten.KeyX},
}

// pressedKeys fire once per key press.
var pressedKeys = map[core.Action][]ebiten.Key{
	core.ActionPause:   {ebiten.KeyP},
	core.ActionRestart: {ebiten.KeyR},
	core.ActionQuit:    {ebiten.KeyEscape, ebiten.KeyQ},
}

// ReadInput builds the input frame for one tick.
func ReadInput(held, justPressed KeyState) core.InputFrame {
	frame := core.NewInputFrame()
	for action, keys := range heldKeys {
		if anyKey(held, keys) {
			frame.Set(action)
		}
	}
	for action, keys := range pressedKeys {
		if anyKey(justPressed, keys) {
			frame.Set(action)
		}
	}
	return frame
}

func anyKey(state KeyState, keys []ebiten.Key) bool {
	for _, k := range keys {
		if state(k) {
			return true
		}
	}
	return false
}
