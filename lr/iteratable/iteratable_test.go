package iteratable

import "testing"

func TestSetAddContains(t *testing.T) {
	S := NewSet(0)
	S.Add("a")
	S.Add("b")
	S.Add("a") // duplicate
	if S.Size() != 2 {
		t.Errorf("expected set of size 2, got %d", S.Size())
	}
	if !S.Contains("b") {
		t.Error("expected set to contain 'b'")
	}
}

func TestSetIterationSeesAppends(t *testing.T) {
	S := NewSet(0)
	S.Add(1)
	var seen []int
	S.IterateOnce()
	for S.Next() {
		n := S.Item().(int)
		seen = append(seen, n)
		if n < 3 {
			S.Add(n + 1)
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected iteration to see appended items, saw %v", seen)
	}
}

func TestSetUnionDifference(t *testing.T) {
	A := NewSet(0)
	A.Add("x")
	A.Add("y")
	B := NewSet(0)
	B.Add("y")
	B.Add("z")
	D := A.Difference(B)
	if D.Size() != 1 || !D.Contains("x") {
		t.Errorf("expected difference {x}, got %v", D.Values())
	}
	if A.Size() != 2 {
		t.Error("difference must not modify the receiver")
	}
	A.Union(B)
	if A.Size() != 3 {
		t.Errorf("expected union of size 3, got %d", A.Size())
	}
}

func TestSetEquals(t *testing.T) {
	A := NewSet(0)
	A.Add(1)
	A.Add(2)
	B := NewSet(0)
	B.Add(2)
	B.Add(1)
	if !A.Equals(B) {
		t.Error("expected sets to be equal irrespective of order")
	}
	B.Add(3)
	if A.Equals(B) {
		t.Error("expected sets of different size to differ")
	}
}

func TestSetRemove(t *testing.T) {
	S := NewSet(0)
	S.Add("a")
	S.Add("b")
	if S.Remove("a") == nil {
		t.Error("expected Remove to return the removed item")
	}
	if S.Contains("a") || S.Size() != 1 {
		t.Errorf("unexpected set after removal: %v", S.Values())
	}
	if S.Remove("nope") != nil {
		t.Error("expected Remove of a non-member to return nil")
	}
}
