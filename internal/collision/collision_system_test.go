package collision

import (
	"math"
	"testing"
)

// mockTileChecker implements TileChecker for testing
type mockTileChecker struct {
	width, height int
	blockingTiles map[int]map[int]bool
}

func newMockTileChecker(width, height int) *mockTileChecker {
	return &mockTileChecker{
		width:         width,
		height:        height,
		blockingTiles: make(map[int]map[int]bool),
	}
}

func (m *mockTileChecker) IsTileBlocking(tileX, tileY int) bool {
	if row, ok := m.blockingTiles[tileY]; ok {
		return row[tileX]
	}
	return false
}

func (m *mockTileChecker) GetWorldBounds() (width, height int) {
	return m.width, m.height
}

func (m *mockTileChecker) setBlocking(x, y int) {
	if m.blockingTiles[y] == nil {
		m.blockingTiles[y] = make(map[int]bool)
	}
	m.blockingTiles[y][x] = true
}

// walledRoom returns a size x size room with a solid border
func walledRoom(size int) *mockTileChecker {
	tc := newMockTileChecker(size, size)
	for i := 0; i < size; i++ {
		tc.setBlocking(i, 0)
		tc.setBlocking(i, size-1)
		tc.setBlocking(0, i)
		tc.setBlocking(size-1, i)
	}
	return tc
}

func TestIsBlockedAt(t *testing.T) {
	cs := NewCollisionSystem(walledRoom(5), 64)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"open interior", 128, 128, false},
		{"border wall", 10, 128, true},
		{"just inside", 64, 64, false},
		{"just outside interior", 63.999, 64, true},
		{"negative", -1, 100, true},
		{"beyond grid", 1000, 100, true},
		{"huge", 1e300, 100, true},
		{"nan", math.NaN(), 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cs.IsBlockedAt(tt.x, tt.y); got != tt.want {
				t.Fatalf("IsBlockedAt(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSlide(t *testing.T) {
	cs := NewCollisionSystem(walledRoom(5), 64)

	t.Run("free movement", func(t *testing.T) {
		x, y := cs.Slide(128, 128, 10, -5)
		if x != 138 || y != 123 {
			t.Fatalf("expected (138,123), got (%v,%v)", x, y)
		}
	})

	t.Run("blocked x keeps y", func(t *testing.T) {
		// east wall starts at x=256
		x, y := cs.Slide(250, 128, 10, 10)
		if x != 250 {
			t.Fatalf("x should be reverted, got %v", x)
		}
		if y != 138 {
			t.Fatalf("y should still move, got %v", y)
		}
	})

	t.Run("blocked y keeps x", func(t *testing.T) {
		x, y := cs.Slide(128, 70, 5, -10)
		if x != 133 || y != 70 {
			t.Fatalf("expected (133,70), got (%v,%v)", x, y)
		}
	})

	t.Run("corner blocks both", func(t *testing.T) {
		x, y := cs.Slide(250, 250, 10, 10)
		if x != 250 || y != 250 {
			t.Fatalf("expected no movement, got (%v,%v)", x, y)
		}
	})

	t.Run("y tested after x applied", func(t *testing.T) {
		tc := newMockTileChecker(4, 4)
		tc.setBlocking(2, 2)
		cs := NewCollisionSystem(tc, 10)
		// x moves into column 2, then y would enter the blocked (2,2)
		x, y := cs.Slide(15, 15, 10, 10)
		if x != 25 || y != 15 {
			t.Fatalf("expected (25,15), got (%v,%v)", x, y)
		}
	})
}

func TestSlideNeverEntersSolidCell(t *testing.T) {
	tc := walledRoom(6)
	tc.setBlocking(2, 2)
	cs := NewCollisionSystem(tc, 64)

	x, y := 96.0, 96.0
	moves := [][2]float64{{30, 30}, {50, 0}, {0, 50}, {-20, 40}, {70, 70}, {-100, 0}, {0, -100}}
	for i := 0; i < 50; i++ {
		m := moves[i%len(moves)]
		x, y = cs.Slide(x, y, m[0], m[1])
		if cs.IsBlockedAt(x, y) {
			t.Fatalf("step %d: position (%v,%v) is inside a solid cell", i, x, y)
		}
	}
}

func TestCheckLineOfSight(t *testing.T) {
	tc := walledRoom(8)
	tc.setBlocking(4, 3)
	cs := NewCollisionSystem(tc, 64)

	if !cs.CheckLineOfSight(96, 96, 96, 400) {
		t.Fatal("expected clear line down column 1")
	}
	if cs.CheckLineOfSight(96, 224, 400, 224) {
		t.Fatal("expected pillar at (4,3) to block the line")
	}
}
