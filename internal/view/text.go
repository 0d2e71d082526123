package view

import (
	"fmt"
	"io"
)

// TextView writes list items to a terminal or any other writer.
type TextView struct {
	w io.Writer
	n int
}

// NewTextView returns a TextView writing to w.
func NewTextView(w io.Writer) *TextView {
	return &TextView{w: w}
}

// Clear starts a new list.
func (v *TextView) Clear() {
	v.n = 0
	fmt.Fprintln(v.w, "----")
}

// Append prints one item.
func (v *TextView) Append(item Item) {
	if item.Placeholder {
		fmt.Fprintln(v.w, item.Text)
		return
	}
	v.n++
	fmt.Fprintf(v.w, "%d. Date: %s\n   Name: %s\n   E-mail: %s\n", v.n, item.Timestamp, item.Name, item.Email)
}

// Recorder keeps the items of the last render in memory.
type Recorder struct {
	items []Item
}

// Clear drops the recorded items.
func (r *Recorder) Clear() {
	r.items = r.items[:0]
}

// Append records item.
func (r *Recorder) Append(item Item) {
	r.items = append(r.items, item)
}

// Items returns a copy of the recorded items.
func (r *Recorder) Items() []Item {
	return append([]Item(nil), r.items...)
}
