package tui

// ListCursor tracks the selected row and scroll offset of a list
type ListCursor struct {
	index  int
	offset int
}

// Index returns the selected row
func (c *ListCursor) Index() int {
	return c.index
}

// Move moves the selection by delta within a list of n rows
func (c *ListCursor) Move(delta, n int) {
	c.index += delta
	c.Clamp(n)
}

// Top selects the first row
func (c *ListCursor) Top() {
	c.index = 0
	c.offset = 0
}

// Bottom selects the last row of a list of n rows
func (c *ListCursor) Bottom(n int) {
	c.index = n - 1
	c.Clamp(n)
}

// Select moves the selection to index
func (c *ListCursor) Select(index, n int) {
	c.index = index
	c.Clamp(n)
}

// Clamp keeps the selection inside a list of n rows
func (c *ListCursor) Clamp(n int) {
	if c.index >= n {
		c.index = n - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}

// Window returns the [start, end) rows to draw so the selection stays visible in height rows
func (c *ListCursor) Window(n, height int) (int, int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	if c.index < c.offset {
		c.offset = c.index
	}
	if c.index >= c.offset+height {
		c.offset = c.index - height + 1
	}
	if c.offset > n-height {
		c.offset = n - height
	}
	if c.offset < 0 {
		c.offset = 0
	}
	end := c.offset + height
	if end > n {
		end = n
	}
	return c.offset, end
}
