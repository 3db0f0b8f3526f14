package game

// GameMode is one immutable entry of the option-set catalog: the ordered
// choice codes, their display labels and the beats relation between codes.
type GameMode struct {
	ID       string
	Choices  []string
	Displays []string
	Beats    map[string][]string
}

// RPS3 is the classic three-option set.
var RPS3 = GameMode{
	ID:       "rps3",
	Choices:  []string{"r", "p", "s"},
	Displays: []string{"🪨 Rock", "📄 Paper", "✂️ Scissors"},
	Beats: map[string][]string{
		"r": {"s"},
		"p": {"r"},
		"s": {"p"},
	},
}

// RPS5 extends the relation with Lizard and Spock; every code defeats
// exactly two others.
var RPS5 = GameMode{
	ID:       "rps5",
	Choices:  []string{"r", "p", "s", "l", "k"},
	Displays: []string{"🪨 Rock", "📄 Paper", "✂️ Scissors", "🦎 Lizard", "🖖 Spock"},
	Beats: map[string][]string{
		"r": {"s", "l"},
		"p": {"r", "k"},
		"s": {"p", "l"},
		"l": {"k", "p"},
		"k": {"s", "r"},
	},
}

// ModeByID looks up a catalog entry by its mode identifier.
func ModeByID(id string) (GameMode, bool) {
	switch id {
	case RPS3.ID:
		return RPS3, true
	case RPS5.ID:
		return RPS5, true
	default:
		return GameMode{}, false
	}
}

// IsValidChoice reports whether code is a playable choice in this mode.
func (m GameMode) IsValidChoice(code string) bool {
	for _, c := range m.Choices {
		if c == code {
			return true
		}
	}
	return false
}

// Display returns the label for a choice code, or the code itself when it
// isn't part of the mode.
func (m GameMode) Display(code string) string {
	for i, c := range m.Choices {
		if c == code {
			return m.Displays[i]
		}
	}
	return code
}

// Compare resolves a pairwise battle: 1 when a beats b, -1 when b beats a,
// 0 on equal choices. Both codes must be valid in this mode.
func (m GameMode) Compare(a, b string) int {
	if a == b {
		return 0
	}
	for _, beaten := range m.Beats[a] {
		if beaten == b {
			return 1
		}
	}
	return -1
}
