package engine

import (
	"math"

	"raycaster/internal/collision"
	"raycaster/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the player pose. Heading is in degrees and is never wrapped.
type Camera struct {
	X, Y    float64
	Heading float64

	// velocity applied during the last Update, world units
	VelX, VelY float64

	MoveSpeed float64 // world units per second
	RotSpeed  float64 // degrees per second
}

// NewCamera creates a camera at (x, y) looking along heading
func NewCamera(x, y, heading, moveSpeed, rotSpeed float64) *Camera {
	return &Camera{
		X:         x,
		Y:         y,
		Heading:   heading,
		MoveSpeed: moveSpeed,
		RotSpeed:  rotSpeed,
	}
}

// direction returns the unit vector for a heading in degrees
func direction(deg float64) mgl64.Vec2 {
	rad := mathutil.DegToRad(deg)
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}

// Forward returns the unit view direction
func (c *Camera) Forward() mgl64.Vec2 {
	return direction(c.Heading)
}

// Update applies one frame of intents. Velocity is taken from the heading
// at the start of the frame, then rotation is applied, then the move is
// resolved one axis at a time against mover. A nil mover moves freely.
func (c *Camera) Update(in Intents, elapsed float64, mover *collision.CollisionSystem) {
	if !(elapsed > 0) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}
	if !in.Any() {
		c.VelX, c.VelY = 0, 0
		return
	}
	move := c.MoveSpeed * elapsed
	rot := c.RotSpeed * elapsed

	var vel mgl64.Vec2
	forward := c.Forward()
	if in.Forward {
		vel = vel.Add(forward.Mul(move))
	}
	if in.Back {
		vel = vel.Sub(forward.Mul(move))
	}

	if in.Strafe {
		if in.Left {
			vel = vel.Add(direction(c.Heading - 90).Mul(move))
		}
		if in.Right {
			vel = vel.Add(direction(c.Heading + 90).Mul(move))
		}
	} else {
		if in.Left {
			c.Heading -= rot
		}
		if in.Right {
			c.Heading += rot
		}
	}

	c.VelX, c.VelY = vel.X(), vel.Y()
	if mover == nil {
		c.X += c.VelX
		c.Y += c.VelY
		return
	}
	c.X, c.Y = mover.Slide(c.X, c.Y, c.VelX, c.VelY)
}
