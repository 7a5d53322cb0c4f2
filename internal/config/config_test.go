package config

import (
	"errors"
	"testing"
)

func TestLevelSelectivityLaddersDownWithDepth(t *testing.T) {
	cases := []struct {
		level        int
		wantDepth    int
		wantSelMin   int
	}{
		{0, 0, 0},
		{5, 5, 0},
		{6, 6, 1},
		{30, 30, 3},
		{54, 54, NoSelectivity},
		{60, 60, NoSelectivity},
	}
	for _, c := range cases {
		depth, sel := Level(c.level)
		if depth != c.wantDepth {
			t.Errorf("Level(%d) depth = %d, want %d", c.level, depth, c.wantDepth)
		}
		if sel != c.wantSelMin {
			t.Errorf("Level(%d) selectivity = %d, want %d", c.level, sel, c.wantSelMin)
		}
	}
}

func TestLevelClampsOutOfRange(t *testing.T) {
	depth, _ := Level(-5)
	if depth != 0 {
		t.Errorf("Level(-5) depth = %d, want 0", depth)
	}
	depth, _ = Level(1000)
	if depth != MaxLevel {
		t.Errorf("Level(1000) depth = %d, want %d", depth, MaxLevel)
	}
}

func TestSelectivityTableMonotonicPercent(t *testing.T) {
	prev := -1
	for i := 0; i <= NoSelectivity; i++ {
		e := Selectivity(i)
		if e.Percent <= prev {
			t.Errorf("selectivity table not increasing at index %d: percent=%d", i, e.Percent)
		}
		prev = e.Percent
	}
	if Selectivity(NoSelectivity).Percent != 100 {
		t.Errorf("NoSelectivity percent = %d, want 100", Selectivity(NoSelectivity).Percent)
	}
}

func TestHashConfigValidate(t *testing.T) {
	ok := DefaultHashConfig()
	if err := ok.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	bad := ok
	bad.NWorkers = 0
	if err := bad.Validate(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}

	bad = ok
	bad.Log2SizeMain = 0
	if err := bad.Validate(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}
