package sparse

import "testing"

func TestInsertContains(t *testing.T) {
	s := NewSet(16)
	for _, v := range []uint32{0, 3, 15} {
		s.Insert(v)
	}
	for _, v := range []uint32{0, 3, 15} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false after Insert", v)
		}
	}
	for _, v := range []uint32{1, 14} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) = true, never inserted", v)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestInsertTwice(t *testing.T) {
	s := NewSet(8)
	s.Insert(5)
	s.Insert(5)
	if s.Len() != 1 {
		t.Errorf("Len() = %d after duplicate insert, want 1", s.Len())
	}
}

func TestRemove(t *testing.T) {
	s := NewSet(8)
	for _, v := range []uint32{1, 2, 3} {
		s.Insert(v)
	}
	s.Remove(2)
	if s.Contains(2) {
		t.Error("Contains(2) = true after Remove")
	}
	if !s.Contains(1) || !s.Contains(3) {
		t.Error("Remove(2) disturbed other members")
	}
	s.Remove(2)
	if s.Len() != 2 {
		t.Errorf("Len() = %d after removing absent value, want 2", s.Len())
	}
}

func TestRemoveLast(t *testing.T) {
	s := NewSet(8)
	s.Insert(7)
	s.Remove(7)
	if s.Len() != 0 || s.Contains(7) {
		t.Error("set not empty after removing only member")
	}
}

func TestClear(t *testing.T) {
	s := NewSet(8)
	for v := uint32(0); v < 8; v++ {
		s.Insert(v)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
	if s.Contains(0) {
		t.Error("Contains(0) = true after Clear")
	}
	s.Insert(4)
	if !s.Contains(4) || s.Len() != 1 {
		t.Error("set unusable after Clear")
	}
}

func TestContainsOutOfRange(t *testing.T) {
	s := NewSet(4)
	if s.Contains(4) || s.Contains(1000) {
		t.Error("Contains reported membership outside the universe")
	}
}
