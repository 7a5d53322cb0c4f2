package config

// MaxLevel is the highest external level the root driver accepts.
const MaxLevel = 60

// levelSelectivity ladders selectivity with level: shallow levels (fast,
// low-effort requests) lean on more aggressive ProbCut pruning, and the
// ladder relaxes to NoSelectivity well before MaxLevel so that the
// deepest levels are always exact once the remaining empties are
// reached, per spec.md §4.L's depth-to-selectivity schedule.
var levelSelectivity = [...]struct {
	minLevel    int
	selectivity int
}{
	{0, 0},
	{6, 1},
	{18, 2},
	{30, 3},
	{42, 4},
	{54, NoSelectivity},
}

// Level maps an external level number (0..60) to a (depth, selectivity)
// pair: depth tracks the level directly, and selectivity ladders down to
// NoSelectivity as described above. n is clamped to [0,MaxLevel].
func Level(n int) (depth, selectivity int) {
	if n < 0 {
		n = 0
	}
	if n > MaxLevel {
		n = MaxLevel
	}
	depth = n
	selectivity = levelSelectivity[0].selectivity
	for _, row := range levelSelectivity {
		if n >= row.minLevel {
			selectivity = row.selectivity
		}
	}
	return depth, selectivity
}
