// Package element classifies sexagenary stems and branches into the five
// elements and exposes the generation and restraint relations between them.
//
// Everything here is constant data plus pure functions. Relations are
// directional: callers that want an unordered check evaluate both orders.
package element

// Element is one of the five elements, in cycle order.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Count is the length of the element cycle.
const Count = 5

// stemElement maps stem index 0-9 to its element.
var stemElement = [10]Element{
	Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water,
}

// branchElement maps branch index 0-11 to its element. The assignment is
// canonical and does not follow a formula.
var branchElement = [12]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

var (
	koreanNames  = [Count]string{"목", "화", "토", "금", "수"}
	hanjaNames   = [Count]string{"木", "火", "土", "金", "水"}
	englishNames = [Count]string{"Wood", "Fire", "Earth", "Metal", "Water"}
)

// mod returns x mod n in [0, n).
func mod(x, n int) int {
	return ((x % n) + n) % n
}

// Normalize folds any integer onto the element cycle.
func Normalize(x int) Element {
	return Element(mod(x, Count))
}

// OfStem returns the element of a stem index. Out-of-range indices wrap.
func OfStem(stem int) Element {
	return stemElement[mod(stem, len(stemElement))]
}

// OfBranch returns the element of a branch index. Out-of-range indices wrap.
func OfBranch(branch int) Element {
	return branchElement[mod(branch, len(branchElement))]
}

// Generates reports whether a generates b (one step forward on the cycle).
func Generates(a, b Element) bool {
	return mod(int(a)+1, Count) == mod(int(b), Count)
}

// Restrains reports whether a restrains b (two steps forward on the cycle).
func Restrains(a, b Element) bool {
	return mod(int(a)+2, Count) == mod(int(b), Count)
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

// Korean returns the Korean syllable for the element.
func (e Element) Korean() string {
	return koreanNames[mod(int(e), Count)]
}

// Hanja returns the Chinese character for the element.
func (e Element) Hanja() string {
	return hanjaNames[mod(int(e), Count)]
}

func (e Element) String() string {
	return englishNames[mod(int(e), Count)]
}
