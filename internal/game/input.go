package game

import (
	"raycaster/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyState reports whether a key is held. ebiten.IsKeyPressed in the game,
// a map in tests.
type KeyState func(ebiten.Key) bool

// ReadIntents maps held keys to movement intents: arrows or WASD move and
// turn, Alt turns left/right into strafing.
func ReadIntents(pressed KeyState) engine.Intents {
	return engine.Intents{
		Forward: pressed(ebiten.KeyUp) || pressed(ebiten.KeyW),
		Back:    pressed(ebiten.KeyDown) || pressed(ebiten.KeyS),
		Left:    pressed(ebiten.KeyLeft) || pressed(ebiten.KeyA),
		Right:   pressed(ebiten.KeyRight) || pressed(ebiten.KeyD),
		Strafe:  pressed(ebiten.KeyAlt) || pressed(ebiten.KeyAltLeft) || pressed(ebiten.KeyAltRight),
	}
}
