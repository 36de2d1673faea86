package vtcore

import "testing"

func newSelectionTestBuffer() *Buffer {
	b := NewBuffer(4, 10)
	rows := []string{"Hello World", "foo-bar baz", "wrapped    ", "next line  "}
	for r, line := range rows {
		for c, ch := range line {
			if c >= b.Cols() {
				break
			}
			b.SetCell(r, c, Cell{Char: ch})
		}
	}
	b.SetWrapped(2, true)
	return b
}

func TestSelectionRegularExtraction(t *testing.T) {
	buf := newSelectionTestBuffer()
	s := NewSelection(" \t,.;:!?()[]{}\"'`<>~|\\/$%^&*-+=")

	s.Start(0, 0, SnapNone, SelectionRegular, false)
	s.Extend(4, 0, SelectionRegular, true, buf)

	if got := s.GetText(buf); got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
}

func TestSelectionWordSnap(t *testing.T) {
	buf := newSelectionTestBuffer()
	s := NewSelection(" \t,.;:!?()[]{}\"'`<>~|\\/$%^&*-+=")

	// Click in the middle of "foo-bar" on row 1 (col 5 is 'a' of "bar", "foo"
	// and "bar" are separated by '-' which is a delimiter).
	s.Start(5, 1, SnapWord, SelectionRegular, false)
	s.Extend(5, 1, SelectionRegular, true, buf)

	got := s.GetText(buf)
	if got != "bar" {
		t.Errorf("expected word snap to select %q, got %q", "bar", got)
	}
}

func TestSelectionLineSnapAcrossWrap(t *testing.T) {
	buf := newSelectionTestBuffer()
	s := NewSelection("")

	s.Start(0, 2, SnapLine, SelectionRegular, false)
	s.Extend(0, 2, SelectionRegular, true, buf)

	got := s.GetText(buf)
	want := "wrappednext line"
	if got != want {
		t.Errorf("expected line snap to cross the wrapped boundary without inserting a newline: got %q, want %q", got, want)
	}
}

func TestSelectionRectangular(t *testing.T) {
	buf := newSelectionTestBuffer()
	s := NewSelection("")

	s.Start(0, 0, SnapNone, SelectionRectangular, false)
	s.Extend(4, 1, SelectionRectangular, true, buf)

	got := s.GetText(buf)
	want := "Hello\nfoo-b"
	if got != want {
		t.Errorf("expected rectangular extraction %q, got %q", want, got)
	}
}

func TestSelectionContains(t *testing.T) {
	s := NewSelection("")
	s.Start(2, 0, SnapNone, SelectionRegular, false)
	s.Extend(5, 1, SelectionRegular, true, nil)

	if s.Contains(0, 1) {
		t.Error("expected (0,1) to be outside the selection")
	}
	if !s.Contains(0, 3) {
		t.Error("expected (0,3) to be inside the selection")
	}
	if !s.Contains(1, 0) {
		t.Error("expected (1,0) to be inside the selection (full row before the end row)")
	}
	if s.Contains(1, 6) {
		t.Error("expected (1,6) to be outside the selection (past the end column)")
	}
}

func TestSelectionClearAndActive(t *testing.T) {
	s := NewSelection("")
	if s.Active() {
		t.Error("expected a fresh selection to be inactive")
	}

	s.Start(0, 0, SnapNone, SelectionRegular, false)
	if !s.Active() {
		t.Error("expected selection to be active after Start")
	}

	s.Clear()
	if s.Active() {
		t.Error("expected selection to be inactive after Clear")
	}
}

func TestSelectionScrollInvalidatesOutOfRange(t *testing.T) {
	s := NewSelection("")
	s.Start(0, 1, SnapNone, SelectionRegular, false)
	s.Extend(0, 1, SelectionRegular, true, nil)

	s.Scroll(0, 4, 1, false)
	if !s.Active() {
		t.Fatal("expected the selection to remain active after an in-range scroll")
	}

	// Scroll far enough that the selection's row leaves [origin, bottom).
	s.Scroll(0, 4, 10, false)
	if s.Active() {
		t.Error("expected the selection to be cleared once it scrolls out of range")
	}
}

func TestSelectionScrollIgnoresOtherScreen(t *testing.T) {
	s := NewSelection("")
	s.Start(0, 1, SnapNone, SelectionRegular, false)
	s.Extend(0, 1, SelectionRegular, true, nil)

	// alt=true does not match the selection's alt=false, so it must be ignored.
	s.Scroll(0, 4, 10, true)
	if !s.Active() {
		t.Error("expected a scroll on the other screen to leave the selection untouched")
	}
}
