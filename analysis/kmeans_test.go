package analysis

import "testing"

func TestKmeans2SeparatesGroups(t *testing.T) {
	values := []float64{1, 1, 2, 2, 9, 9, 10, 10}

	assignments, centers := kmeans2(values)

	low := assignments[0]
	for i := 0; i < 4; i++ {
		if assignments[i] != low {
			t.Errorf("value %v assigned to %d, want %d", values[i], assignments[i], low)
		}
	}
	high := assignments[4]
	if high == low {
		t.Fatalf("both groups share cluster %d", low)
	}
	for i := 4; i < 8; i++ {
		if assignments[i] != high {
			t.Errorf("value %v assigned to %d, want %d", values[i], assignments[i], high)
		}
	}
	if centers[low] >= centers[high] {
		t.Errorf("low center %v not below high center %v", centers[low], centers[high])
	}
}

func TestKmeans2IdenticalValues(t *testing.T) {
	values := []float64{5, 5, 5, 5}

	assignments, centers := kmeans2(values)

	// Ties go to the lower-index centroid.
	for i, a := range assignments {
		if a != 0 {
			t.Errorf("value %d assigned to %d, want 0", i, a)
		}
	}
	if len(centers) != 2 {
		t.Fatalf("centers = %v, want exactly 2", centers)
	}
	if centers[0] != 5 {
		t.Errorf("center 0 = %v, want 5", centers[0])
	}
}

func TestKmeans2Deterministic(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}

	a1, c1 := kmeans2(values)
	a2, c2 := kmeans2(values)

	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("assignment %d differs across runs", i)
		}
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("center %d differs across runs", i)
		}
	}
}
