package hashtable

import "github.com/hailam/edaxgo/internal/board"

// ProbeBoard canonicalizes b (folding out solid discs on fully occupied
// lines once few enough empties remain, per board.CanonicalKey) before
// probing, and undoes the resulting score offset on the way out so
// callers never see the canonicalization leak through.
func (t *Table) ProbeBoard(b board.Board, emptyCount int) (Entry, bool) {
	key, offset := board.CanonicalKey(b, emptyCount)
	e, ok := t.Probe(key.Hash())
	if !ok {
		return e, false
	}
	if offset != 0 {
		e.Lower = clampScore(int(e.Lower) + offset)
		e.Upper = clampScore(int(e.Upper) + offset)
	}
	return e, true
}

// StoreBoard is the canonicalizing counterpart of Store: alpha, beta and
// score are all in b's native (uncanonicalized) score domain.
func (t *Table) StoreBoard(b board.Board, emptyCount, depth, selectivity int, cost uint8, alpha, beta, score, move int) {
	key, offset := board.CanonicalKey(b, emptyCount)
	t.Store(key.Hash(), depth, selectivity, cost, alpha-offset, beta-offset, score-offset, move)
}

func clampScore(v int) int16 {
	if v < ScoreMin {
		v = ScoreMin
	}
	if v > ScoreMax {
		v = ScoreMax
	}
	return int16(v)
}
