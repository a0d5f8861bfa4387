// Package bytewords codes the minimal (2-letter-per-byte, no separators)
// Bytewords encoding used by UR literals (spec §4.1 "UR", §6 "UR type").
// EncodeMinimal exists mainly to build valid fixtures for testing UR decoding; the
// diagnostic notation itself never composes UR text.
package bytewords

import "fmt"

// words is the canonical 256-word Bytewords table (BCR-2020-012). Byte
// value n is represented by words[n]; the minimal/URI style used inside
// `ur:` literals encodes a byte as that word's first and last letter.
var words = [256]string{
	"able", "acid", "also", "apex", "aqua", "arch", "atom", "aunt",
	"away", "axis", "back", "bald", "barn", "belt", "beta", "bias",
	"blue", "body", "brag", "brew", "bulb", "buzz", "calm", "cash",
	"cats", "chef", "city", "claw", "code", "cola", "cook", "cost",
	"crux", "curl", "cusp", "cyan", "dark", "data", "days", "deli",
	"dice", "diet", "door", "down", "draw", "drop", "drum", "dull",
	"duty", "each", "easy", "echo", "edge", "epic", "even", "exam",
	"exit", "eyes", "fact", "fair", "fern", "figs", "film", "fish",
	"fizz", "flap", "flew", "flux", "foxy", "free", "frog", "fuel",
	"fund", "gala", "game", "gear", "gems", "gift", "girl", "glow",
	"good", "gray", "grim", "guru", "gush", "gyro", "half", "hang",
	"hard", "hawk", "heat", "help", "high", "hill", "holy", "hope",
	"horn", "huts", "iced", "idea", "idle", "inch", "inky", "into",
	"iris", "iron", "item", "jade", "jazz", "join", "jolt", "jowl",
	"judo", "jugs", "jump", "junk", "jury", "keep", "keno", "kept",
	"keys", "kick", "kiln", "king", "kite", "kiwi", "knob", "lamb",
	"lava", "lazy", "leaf", "legs", "liar", "limp", "lion", "list",
	"logo", "loud", "love", "luau", "luck", "lung", "main", "many",
	"math", "maze", "memo", "menu", "meow", "mild", "mint", "miss",
	"monk", "nail", "navy", "need", "news", "next", "noon", "note",
	"numb", "obey", "oboe", "omit", "onyx", "open", "oval", "owls",
	"paid", "part", "peck", "play", "plus", "poem", "pool", "pose",
	"puff", "puma", "purr", "quad", "quiz", "race", "ramp", "real",
	"redo", "rich", "road", "rock", "roof", "ruby", "ruin", "runs",
	"rust", "safe", "saga", "scar", "sets", "silk", "skew", "slot",
	"soap", "solo", "song", "stub", "surf", "swan", "taco", "tank",
	"taxi", "tent", "tied", "time", "tiny", "toil", "tomb", "toys",
	"trip", "tuna", "twin", "ugly", "undo", "unit", "urge", "user",
	"vast", "very", "veto", "vial", "vibe", "view", "visa", "void",
	"vows", "wall", "wand", "warm", "wasp", "wave", "waxy", "webs",
	"what", "when", "whiz", "wolf", "work", "yank", "yawn", "yell",
	"yoga", "yurt", "zaps", "zero", "zest", "zinc", "zone", "zoom",
}

var minimalIndex map[[2]byte]byte

func init() {
	minimalIndex = make(map[[2]byte]byte, 256)
	for b, w := range words {
		key := [2]byte{w[0], w[3]}
		minimalIndex[key] = byte(b)
	}
}

// DecodeMinimal decodes the minimal/URI Bytewords style: one two-letter,
// case-insensitive code per byte, no separators. It returns an error if s
// has odd length or contains a code not present in the wordlist.
func DecodeMinimal(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("bytewords: odd-length input %q", s)
	}
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		key := [2]byte{lower(s[i]), lower(s[i+1])}
		b, ok := minimalIndex[key]
		if !ok {
			return nil, fmt.Errorf("bytewords: unknown code %q", s[i:i+2])
		}
		out = append(out, b)
	}
	return out, nil
}

// EncodeMinimal encodes data in the minimal/URI Bytewords style: one
// two-letter lowercase code per byte, no separators.
func EncodeMinimal(data []byte) string {
	var b []byte
	for _, n := range data {
		w := words[n]
		b = append(b, w[0], w[3])
	}
	return string(b)
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
