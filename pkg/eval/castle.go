package eval

import "github.com/nanakusa/shogo/pkg/shogi"

// castleRole classifies why an offset belongs to a castle template, used to
// weight partial matches: losing a PrimaryDefender hurts a castle's quality
// far more than losing a Buffer square.
type castleRole int

const (
	PrimaryDefender castleRole = iota
	SecondaryDefender
	PawnShield
	Buffer
)

// roleWeight is the default weight for a role when an offset doesn't
// override it explicitly.
func (r castleRole) weight() int {
	switch r {
	case PrimaryDefender:
		return 4
	case SecondaryDefender:
		return 2
	case PawnShield:
		return 2
	default: // Buffer
		return 1
	}
}

// castleOffset is a square relative to the King, expressed in the King
// owner's own frame: dRow is measured towards the owner's own back rank (so
// the same template works for both Black and White), dCol is absolute
// column delta. weight defaults to role.weight() when left at zero.
type castleOffset struct {
	dRow, dCol int
	types      []shogi.PieceType
	role       castleRole
	weight     int
}

func (o castleOffset) w() int {
	if o.weight != 0 {
		return o.weight
	}
	return o.role.weight()
}

// CastlePattern is a named defensive structure: the King must sit on one of
// KingCols and is scored by how much of Offsets' total weight is satisfied.
type CastlePattern struct {
	Name     string
	KingCols []int
	Offsets  []castleOffset
}

// goldOrSilver matches against pc.Type.Unpromoted(), so it also accepts a
// promoted Silver (which demotes to Silver) standing in the shield.
var goldOrSilver = []shogi.PieceType{shogi.Gold, shogi.Silver}

// namedCastles lists the three classical defensive structures this
// evaluator recognizes, approximated as relative-offset templates rather
// than exact historical square sets.
var namedCastles = []CastlePattern{
	{
		Name:     "Yagura",
		KingCols: []int{1, 2},
		Offsets: []castleOffset{
			{dRow: 1, dCol: 0, types: goldOrSilver, role: PrimaryDefender},
			{dRow: 1, dCol: 1, types: []shogi.PieceType{shogi.Gold}, role: PrimaryDefender},
			{dRow: 2, dCol: 1, types: []shogi.PieceType{shogi.Silver}, role: SecondaryDefender},
			{dRow: 1, dCol: -1, types: []shogi.PieceType{shogi.Pawn}, role: PawnShield},
		},
	},
	{
		Name:     "Mino",
		KingCols: []int{0, 1},
		Offsets: []castleOffset{
			{dRow: 0, dCol: 1, types: []shogi.PieceType{shogi.Silver}, role: PrimaryDefender},
			{dRow: 1, dCol: 1, types: []shogi.PieceType{shogi.Gold}, role: PrimaryDefender},
			{dRow: 1, dCol: 2, types: []shogi.PieceType{shogi.Gold}, role: SecondaryDefender},
			{dRow: 1, dCol: 0, types: []shogi.PieceType{shogi.Pawn}, role: PawnShield},
		},
	},
	{
		Name:     "Anaguma",
		KingCols: []int{0},
		Offsets: []castleOffset{
			{dRow: 1, dCol: 0, types: []shogi.PieceType{shogi.Gold, shogi.Silver}, role: PrimaryDefender},
			{dRow: 0, dCol: 1, types: []shogi.PieceType{shogi.Gold, shogi.Silver}, role: PrimaryDefender},
			{dRow: 1, dCol: 1, types: goldOrSilver, role: SecondaryDefender},
			{dRow: 2, dCol: 0, types: []shogi.PieceType{shogi.Pawn}, role: PawnShield},
		},
	},
}

// castleBonus is the tapered value of each completed pattern, strongest
// early (a completed fortress is worth more before material thins out).
var castleBonus = map[string]Tapered{
	"Yagura":  {MG: 55, EG: 15},
	"Mino":    {MG: 45, EG: 10},
	"Anaguma": {MG: 70, EG: 20},
}

// CastleRecognizer matches namedCastles against a position, memoizing
// results per (King square, nearby-piece fingerprint) so repeated search
// nodes sharing a fortress don't re-walk every template.
type CastleRecognizer struct {
	cache *lruCache
}

func NewCastleRecognizer(capacity int) *CastleRecognizer {
	return &CastleRecognizer{cache: newLRUCache(capacity)}
}

// fingerprint cheaply summarizes the area around pl's King (from one rank in
// front of it to two ranks behind it, two files either side), enough to
// distinguish castle shapes without a full Zobrist table.
func fingerprint(pos shogi.Position, pl shogi.Player, king shogi.Square) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	own := pl.Forward()
	for dRow := -1; dRow <= 2; dRow++ {
		for dCol := -2; dCol <= 2; dCol++ {
			sq := shogi.NewSquare(king.Row()-own*dRow, king.Col()+dCol)
			pc, ok := pos.PieceAt(sq)
			v := uint64(0xff)
			if ok {
				v = uint64(pc.Type) | uint64(pc.Player)<<8
			}
			h = (h ^ v) * 1099511628211
		}
	}
	return h
}

// matchQuality blends piece-count coverage (how many offsets matched, plain
// count) with weighted coverage (how much of the pattern's total weight
// matched) into a single q in [0,1]. Weighted coverage dominates, since
// losing a PrimaryDefender should cost far more than losing a Buffer square
// even when the raw match count looks similar.
func matchQuality(matched, total int, matchedWeight, totalWeight int) float64 {
	if total == 0 || totalWeight == 0 {
		return 0
	}
	pieceRatio := float64(matched) / float64(total)
	weightRatio := float64(matchedWeight) / float64(totalWeight)
	return 0.3*pieceRatio + 0.7*weightRatio
}

// Match returns the tapered bonus for whichever namedCastles template pl's
// King and nearby pieces best satisfy, scaled by that template's match
// quality q in [0,1]: a fortress missing a defender or two still counts for
// something, just proportionally less than a complete one.
func (c *CastleRecognizer) Match(pos shogi.Position, pl shogi.Player) Tapered {
	king := pos.KingSquare(pl)
	key := (fingerprint(pos, pl, king)^uint64(king))*1099511628211 ^ uint64(pl)<<63
	if v, ok := c.cache.Get(key); ok {
		return v
	}

	var best Tapered
	bestQuality := 0.0
	kingCol := king.Col()
	if pl == shogi.White {
		kingCol = 8 - kingCol // mirror so templates authored for Black apply to both
	}

	own := pl.Forward()
	for _, pat := range namedCastles {
		if !containsInt(pat.KingCols, kingCol) {
			continue
		}

		matched, totalWeight, matchedWeight := 0, 0, 0
		for _, off := range pat.Offsets {
			w := off.w()
			totalWeight += w

			col := king.Col() + off.dCol
			if pl == shogi.White {
				col = king.Col() - off.dCol
			}
			row := king.Row() - own*off.dRow
			sq := shogi.NewSquare(row, col)
			pc, ok := pos.PieceAt(sq)
			if ok && pc.Player == pl && containsType(off.types, pc.Type.Unpromoted()) {
				matched++
				matchedWeight += w
			}
		}

		q := matchQuality(matched, len(pat.Offsets), matchedWeight, totalWeight)
		if q > bestQuality {
			bestQuality = q
			best = castleBonus[pat.Name].ScaleQ(q)
		}
	}

	c.cache.Put(key, best)
	return best
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsType(xs []shogi.PieceType, v shogi.PieceType) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
