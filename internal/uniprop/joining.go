package uniprop

import "sort"

// joiningRange assigns a joining type to the inclusive range lo..hi.
type joiningRange struct {
	lo, hi rune
	jt     JoiningType
}

// joiningRanges is the explicit part of ArabicShaping.txt for the
// scripts that ContextJ cares about, sorted by lo. Runes outside these
// ranges are Transparent or NonJoining depending on their general
// category.
//
// Neither the standard library nor golang.org/x/text export joining
// types, the table is maintained by hand.
var joiningRanges = []joiningRange{
	// Arabic
	{0x0600, 0x0605, NonJoining},
	{0x0608, 0x0608, NonJoining},
	{0x060B, 0x060B, NonJoining},
	{0x0620, 0x0620, DualJoining},
	{0x0621, 0x0621, NonJoining},
	{0x0622, 0x0625, RightJoining},
	{0x0626, 0x0626, DualJoining},
	{0x0627, 0x0627, RightJoining},
	{0x0628, 0x0628, DualJoining},
	{0x0629, 0x0629, RightJoining},
	{0x062A, 0x062E, DualJoining},
	{0x062F, 0x0632, RightJoining},
	{0x0633, 0x063F, DualJoining},
	{0x0640, 0x0640, JoinCausing},
	{0x0641, 0x0647, DualJoining},
	{0x0648, 0x0648, RightJoining},
	{0x0649, 0x064A, DualJoining},
	{0x066E, 0x066F, DualJoining},
	{0x0671, 0x0673, RightJoining},
	{0x0674, 0x0674, NonJoining},
	{0x0675, 0x0677, RightJoining},
	{0x0678, 0x0687, DualJoining},
	{0x0688, 0x0699, RightJoining},
	{0x069A, 0x06BF, DualJoining},
	{0x06C0, 0x06C0, RightJoining},
	{0x06C1, 0x06C2, DualJoining},
	{0x06C3, 0x06CB, RightJoining},
	{0x06CC, 0x06CC, DualJoining},
	{0x06CD, 0x06CD, RightJoining},
	{0x06CE, 0x06CE, DualJoining},
	{0x06CF, 0x06CF, RightJoining},
	{0x06D0, 0x06D1, DualJoining},
	{0x06D2, 0x06D3, RightJoining},
	{0x06D5, 0x06D5, RightJoining},
	{0x06DD, 0x06DD, NonJoining},
	{0x06EE, 0x06EF, RightJoining},
	{0x06FA, 0x06FC, DualJoining},
	{0x06FF, 0x06FF, DualJoining},

	// Syriac
	{0x0710, 0x0710, RightJoining},
	{0x0712, 0x0714, DualJoining},
	{0x0715, 0x0719, RightJoining},
	{0x071A, 0x071D, DualJoining},
	{0x071E, 0x071E, RightJoining},
	{0x071F, 0x0727, DualJoining},
	{0x0728, 0x0728, RightJoining},
	{0x0729, 0x0729, DualJoining},
	{0x072A, 0x072A, RightJoining},
	{0x072B, 0x072B, DualJoining},
	{0x072C, 0x072C, RightJoining},
	{0x072D, 0x072E, DualJoining},
	{0x072F, 0x072F, RightJoining},
	{0x074D, 0x074D, RightJoining},
	{0x074E, 0x074F, DualJoining},

	// Arabic Supplement
	{0x0750, 0x0758, DualJoining},
	{0x0759, 0x075B, RightJoining},
	{0x075C, 0x076A, DualJoining},
	{0x076B, 0x076C, RightJoining},
	{0x076D, 0x0770, DualJoining},
	{0x0771, 0x0771, RightJoining},
	{0x0772, 0x0772, DualJoining},
	{0x0773, 0x0774, RightJoining},
	{0x0775, 0x0777, DualJoining},
	{0x0778, 0x0779, RightJoining},
	{0x077A, 0x077F, DualJoining},

	// NKo
	{0x07CA, 0x07EA, DualJoining},
	{0x07FA, 0x07FA, JoinCausing},

	// Mandaic
	{0x0840, 0x0840, RightJoining},
	{0x0841, 0x0845, DualJoining},
	{0x0846, 0x0847, RightJoining},
	{0x0848, 0x0848, DualJoining},
	{0x0849, 0x0849, RightJoining},
	{0x084A, 0x0853, DualJoining},
	{0x0854, 0x0854, RightJoining},
	{0x0855, 0x0855, DualJoining},
	{0x0856, 0x0858, RightJoining},

	// Mongolian
	{0x1807, 0x1807, DualJoining},
	{0x180A, 0x180A, JoinCausing},
	{0x1820, 0x1878, DualJoining},
	{0x1887, 0x18A8, DualJoining},
	{0x18AA, 0x18AA, DualJoining},

	// ZERO WIDTH JOINER
	{0x200D, 0x200D, JoinCausing},

	// Phags-pa
	{0xA840, 0xA871, DualJoining},
	{0xA872, 0xA872, LeftJoining},
}

// lookupJoiningType returns the joining type listed for r, and whether
// r is listed at all.
func lookupJoiningType(r rune) (JoiningType, bool) {
	i := sort.Search(len(joiningRanges), func(i int) bool {
		return joiningRanges[i].hi >= r
	})
	if i < len(joiningRanges) && joiningRanges[i].lo <= r {
		return joiningRanges[i].jt, true
	}
	return NonJoining, false
}
