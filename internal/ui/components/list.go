package components

// List is a cursor over Len items with a scrolling window of PageSize.
// It holds no items itself so it can index cards, actions or rows.
type List struct {
	Len      int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates an empty list with the given page size.
func NewList(pageSize int) List {
	if pageSize < 1 {
		pageSize = 1
	}
	return List{PageSize: pageSize}
}

// Reset sets the item count and moves the cursor to the top.
func (l *List) Reset(n int) {
	if n < 0 {
		n = 0
	}
	l.Len = n
	l.Cursor = 0
	l.Offset = 0
}

// Down moves the cursor down, scrolling when it leaves the window.
func (l *List) Down() bool {
	if l.Cursor >= l.Len-1 {
		return false
	}
	l.Cursor++
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
	return true
}

// Up moves the cursor up.
func (l *List) Up() bool {
	if l.Cursor <= 0 {
		return false
	}
	l.Cursor--
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	return true
}

// Selected returns the cursor index, or -1 when the list is empty.
func (l List) Selected() int {
	if l.Len == 0 {
		return -1
	}
	return l.Cursor
}

// IsSelected reports whether idx is the cursor.
func (l List) IsSelected(idx int) bool {
	return l.Len > 0 && idx == l.Cursor
}
