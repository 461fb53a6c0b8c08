package gallery

// Direction of a modal navigation step
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Modal is the full-image viewer state. The zero value is closed.
type Modal struct {
	open   bool
	index  int
	source string
}

// IsOpen reports whether the viewer is showing an image
func (m Modal) IsOpen() bool { return m.open }

// Index is the rendered position of the shown image, -1 when closed.
func (m Modal) Index() int {
	if !m.open {
		return -1
	}
	return m.index
}

// Source is the full-resolution path being shown, "" when closed.
func (m Modal) Source() string {
	if !m.open {
		return ""
	}
	return m.source
}

// Open shows the image at index. Opening an open modal replaces the image.
func (m *Modal) Open(index int, source string) {
	m.open = true
	m.index = index
	m.source = source
}

// Close resets the viewer and reports whether it was open.
func (m *Modal) Close() bool {
	was := m.open
	*m = Modal{}
	return was
}

// StepIndex returns the next visible position from `from` in dir,
// wrapping around both ends. Returns from when nothing else is visible.
func StepIndex(from int, dir Direction, visible []bool) int {
	n := len(visible)
	if n == 0 {
		return from
	}
	for k := 1; k <= n; k++ {
		j := ((from+int(dir)*k)%n + n) % n
		if visible[j] {
			return j
		}
	}
	return from
}
