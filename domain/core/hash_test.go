package core

import "testing"

func TestComputeTableHash(t *testing.T) {
	a := ComputeTableHash([][]string{{"Yes", "t(25) = 2.10"}, {"No", "z = 1.96"}})
	b := ComputeTableHash([][]string{{"Yes", "t(25) = 2.10"}, {"No", "z = 1.96"}})
	if a != b {
		t.Errorf("identical tables hashed differently: %s vs %s", a, b)
	}

	if ComputeTableHash([][]string{{"ab"}}) == ComputeTableHash([][]string{{"a", "b"}}) {
		t.Error("cell boundaries must affect the hash")
	}
	if ComputeTableHash([][]string{{"a"}, {"b"}}) == ComputeTableHash([][]string{{"a", "b"}}) {
		t.Error("row boundaries must affect the hash")
	}
	if Hash(a).IsEmpty() {
		t.Error("hash should not be empty")
	}
}
