package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Range(1, 6)
		b := rng2.Range(1, 6)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Range_Bounds(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		r := rng.Range(-2, 2)
		if r < -2 || r > 2 {
			t.Fatalf("draw out of range [-2,2]: got %d", r)
		}
	}
}

func TestRNG_Range_Degenerate(t *testing.T) {
	rng := NewRNG(1)

	for i := 0; i < 10; i++ {
		if r := rng.Range(3, 3); r != 3 {
			t.Fatalf("range [3,3] should always be 3, got %d", r)
		}
	}
}

func TestRNG_Chance_Extremes(t *testing.T) {
	rng := NewRNG(7)

	for i := 0; i < 10; i++ {
		if rng.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !rng.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestRNG_Chance_Distribution(t *testing.T) {
	rng := NewRNG(12345)

	const trials = 10000
	hits := 0
	for i := 0; i < trials; i++ {
		if rng.Chance(0.3) {
			hits++
		}
	}

	// With 10k trials, expect roughly 30% ± some margin.
	if hits < 2500 || hits > 3500 {
		t.Errorf("expected ~3000 hits at p=0.3, got %d", hits)
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)

	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}

	rng.Range(1, 6)
	if rng.Position() != 1 {
		t.Fatalf("expected position 1, got %d", rng.Position())
	}

	rng.Chance(0.5)
	if rng.Position() != 2 {
		t.Fatalf("expected position 2, got %d", rng.Position())
	}

	rng.Intn(20)
	rng.Choice(4)
	if rng.Position() != 4 {
		t.Fatalf("expected position 4, got %d", rng.Position())
	}
}

func TestRNG_Chance_ZeroDoesNotAdvance(t *testing.T) {
	rng := NewRNG(42)
	rng.Chance(0)
	if rng.Position() != 0 {
		t.Fatalf("Chance(0) should not advance position, got %d", rng.Position())
	}
}

func TestRNG_Restore_MatchesPosition(t *testing.T) {
	// Advance an RNG to position 10 and record the next 5 draws.
	rng := NewRNG(42)
	for i := 0; i < 10; i++ {
		rng.Range(1, 6)
	}

	var expected [5]int
	for i := range expected {
		expected[i] = rng.Range(1, 6)
	}

	// Restore to position 10 and verify same draws.
	restored := RestoreRNG(42, 10)
	if restored.Position() != 10 {
		t.Fatalf("expected position 10, got %d", restored.Position())
	}
	if restored.Seed() != 42 {
		t.Fatalf("expected seed 42, got %d", restored.Seed())
	}

	for i, want := range expected {
		got := restored.Range(1, 6)
		if got != want {
			t.Fatalf("draw %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestRNG_DifferentSeeds_DifferentResults(t *testing.T) {
	rng1 := NewRNG(1)
	rng2 := NewRNG(2)

	// With different seeds, at least some draws should differ.
	differs := false
	for i := 0; i < 20; i++ {
		if rng1.Intn(100) != rng2.Intn(100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different results")
	}
}
