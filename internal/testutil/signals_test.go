package testutil

import "testing"

func TestRamp(t *testing.T) {
	r := Ramp(1, 0.5, 4)
	want := []float64{1, 1.5, 2, 2.5}
	RequireSliceNearlyEqual(t, r, want, 0)
}

func TestDeterministicSineReproducible(t *testing.T) {
	a := DeterministicSine(2, 60, 0.5, 100)
	b := DeterministicSine(2, 60, 0.5, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
	if a[0] != 0 {
		t.Fatalf("a[0] = %v, want 0", a[0])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestEdge(t *testing.T) {
	e := Edge(0, 1, 5, 2)
	RequireSliceNearlyEqual(t, e, []float64{0, 0, 1, 1, 1}, 0)
}

func TestDCAndAdd(t *testing.T) {
	sum := Add(DC(0.5, 4), Ramp(0, 1, 3))
	RequireSliceNearlyEqual(t, sum, []float64{0.5, 1.5, 2.5}, 0)
}
