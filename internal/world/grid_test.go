package world

import (
	"errors"
	"testing"
)

func TestNewGrid(t *testing.T) {
	t.Run("size mismatch", func(t *testing.T) {
		_, err := NewGrid(3, 3, make([]int, 8))
		if !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("expected ErrSizeMismatch, got %v", err)
		}
	})
	t.Run("zero size", func(t *testing.T) {
		_, err := NewGrid(0, 3, nil)
		if !errors.Is(err, ErrEmptyMap) {
			t.Fatalf("expected ErrEmptyMap, got %v", err)
		}
	})
	t.Run("copies cells", func(t *testing.T) {
		cells := []int{1, 0, 0, 1}
		g, err := NewGrid(2, 2, cells)
		if err != nil {
			t.Fatalf("NewGrid: %v", err)
		}
		cells[1] = 1
		if g.IsSolid(1, 0) {
			t.Fatal("grid should not share the caller's slice")
		}
	})
}

func TestGridIsSolid(t *testing.T) {
	g, err := NewGrid(3, 3, []int{
		1, 1, 1,
		1, 0, 2,
		1, 1, 1,
	})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"interior empty", 1, 1, false},
		{"wall code 1", 0, 0, true},
		{"wall code 2", 2, 1, true},
		{"left of grid", -1, 1, true},
		{"below grid", 1, 3, true},
		{"far outside", 100, -100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsSolid(tt.x, tt.y); got != tt.want {
				t.Fatalf("IsSolid(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if code, ok := g.Cell(2, 1); !ok || code != 2 {
		t.Fatalf("Cell(2,1) = %d,%v", code, ok)
	}
	if _, ok := g.Cell(3, 0); ok {
		t.Fatal("Cell outside grid should report !ok")
	}
	if w, h := g.GetWorldBounds(); w != 3 || h != 3 {
		t.Fatalf("bounds = %dx%d", w, h)
	}
}

func TestGridBorderSolid(t *testing.T) {
	closed, _ := NewGrid(3, 3, []int{1, 1, 1, 1, 0, 1, 1, 1, 1})
	if !closed.BorderSolid() {
		t.Fatal("closed room should have a solid border")
	}
	open, _ := NewGrid(3, 3, []int{1, 0, 1, 1, 0, 1, 1, 1, 1})
	if open.BorderSolid() {
		t.Fatal("gap in top row should be detected")
	}
}
