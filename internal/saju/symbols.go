package saju

// Stem is a heavenly stem index in [0,9].
type Stem int

// Branch is an earthly branch index in [0,11].
type Branch int

const (
	StemCount   = 10
	BranchCount = 12
	CycleLength = 60
)

var (
	stemKorean   = [StemCount]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
	stemHanja    = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	branchKorean = [BranchCount]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
	branchHanja  = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

// normalizeMod returns x mod n in [0, n) for any sign of x.
func normalizeMod(x, n int) int {
	return ((x % n) + n) % n
}

// NewStem folds any integer onto the stem cycle.
func NewStem(x int) Stem { return Stem(normalizeMod(x, StemCount)) }

// NewBranch folds any integer onto the branch cycle.
func NewBranch(x int) Branch { return Branch(normalizeMod(x, BranchCount)) }

// Name returns the Korean syllable of the stem.
func (s Stem) Name() string { return stemKorean[normalizeMod(int(s), StemCount)] }

// Hanja returns the Chinese character of the stem.
func (s Stem) Hanja() string { return stemHanja[normalizeMod(int(s), StemCount)] }

// Name returns the Korean syllable of the branch.
func (b Branch) Name() string { return branchKorean[normalizeMod(int(b), BranchCount)] }

// Hanja returns the Chinese character of the branch.
func (b Branch) Hanja() string { return branchHanja[normalizeMod(int(b), BranchCount)] }
