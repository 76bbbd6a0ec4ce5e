// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package bytewords

// words is the Bytewords table. The first and last letters of every word are
// unique, they form the minimal encoding.
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
	"soap", "solo", "song", "stub", "surf", "swan", "taco", "task",
	"taxi", "tent", "tied", "time", "tiny", "toil", "tomb", "toys",
	"trip", "tuna", "twin", "ugly", "undo", "unit", "urge", "user",
	"vast", "very", "veto", "vial", "vibe", "view", "visa", "void",
	"vows", "wall", "wand", "warm", "wasp", "wave", "waxy", "webs",
	"what", "when", "whiz", "wolf", "work", "yank", "yawn", "yell",
	"yoga", "yurt", "zaps", "zero", "zest", "zinc", "zone", "zoom",
}

const alphabet = 26

// minimalIndex maps (first letter, last letter) to the byte value, -1 if unused.
var minimalIndex [alphabet * alphabet]int16

func init() {
	for i := range minimalIndex {
		minimalIndex[i] = -1
	}
	for i, w := range words {
		k := minimalKey(w[0], w[3])
		if minimalIndex[k] >= 0 {
			panic("bytewords: ambiguous minimal word " + w)
		}
		minimalIndex[k] = int16(i)
	}
}

func minimalKey(first byte, last byte) int {
	return int(first-'a')*alphabet + int(last-'a')
}

func lookupMinimal(first byte, last byte) (byte, bool) {
	if first < 'a' || first > 'z' || last < 'a' || last > 'z' {
		return 0, false
	}
	i := minimalIndex[minimalKey(first, last)]
	if i < 0 {
		return 0, false
	}
	return byte(i), true
}

func lookupWord(token string, style Style) (byte, bool) {
	if style == Minimal {
		if len(token) != 2 {
			return 0, false
		}
		return lookupMinimal(token[0], token[1])
	}
	if len(token) != 4 {
		return 0, false
	}
	b, ok := lookupMinimal(token[0], token[3])
	if !ok || words[b] != token {
		return 0, false
	}
	return b, true
}
