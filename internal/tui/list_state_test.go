package tui

import "testing"

func TestListCursor_Move(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		n     int
		want  int
	}{
		{"down", 0, 1, 5, 1},
		{"up at top stays", 0, -1, 5, 0},
		{"down at bottom stays", 4, 1, 5, 4},
		{"page down clamps", 2, PageJump, 5, 4},
		{"page up clamps", 3, -PageJump, 5, 0},
		{"empty list", 3, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ListCursor{index: tt.start}
			c.Move(tt.delta, tt.n)
			if c.Index() != tt.want {
				t.Errorf("Index() = %d, want %d", c.Index(), tt.want)
			}
		})
	}
}

func TestListCursor_TopBottom(t *testing.T) {
	var c ListCursor
	c.Bottom(7)
	if c.Index() != 6 {
		t.Errorf("Bottom: Index() = %d, want 6", c.Index())
	}
	c.Top()
	if c.Index() != 0 {
		t.Errorf("Top: Index() = %d, want 0", c.Index())
	}
	c.Bottom(0)
	if c.Index() != 0 {
		t.Errorf("Bottom of empty list: Index() = %d, want 0", c.Index())
	}
}

func TestListCursor_ClampAfterShrink(t *testing.T) {
	c := ListCursor{index: 9}
	c.Clamp(3)
	if c.Index() != 2 {
		t.Errorf("Index() = %d, want 2", c.Index())
	}
}

func TestListCursor_Window(t *testing.T) {
	var c ListCursor

	start, end := c.Window(20, 5)
	if start != 0 || end != 5 {
		t.Errorf("initial window = [%d,%d), want [0,5)", start, end)
	}

	c.Select(7, 20)
	start, end = c.Window(20, 5)
	if start != 3 || end != 8 {
		t.Errorf("window after scrolling down = [%d,%d), want [3,8)", start, end)
	}

	c.Select(4, 20)
	start, end = c.Window(20, 5)
	if start != 3 || end != 8 {
		t.Errorf("window should not move while selection is visible, got [%d,%d)", start, end)
	}

	c.Select(1, 20)
	start, end = c.Window(20, 5)
	if start != 1 || end != 6 {
		t.Errorf("window after scrolling up = [%d,%d), want [1,6)", start, end)
	}

	// List shorter than the window
	c.Select(2, 3)
	start, end = c.Window(3, 5)
	if start != 0 || end != 3 {
		t.Errorf("short list window = [%d,%d), want [0,3)", start, end)
	}
}
