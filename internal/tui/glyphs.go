package tui

import "strings"

// Terminals can't change the user's font, so affordances come in a Unicode and
// an ASCII flavor for fonts that render box/check glyphs poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

func parseGlyphs(s string) glyphSet {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascii":
		return glyphSetASCII
	default:
		return glyphSetUnicode
	}
}

func (gs glyphSet) box(done bool) string {
	if gs == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "☑"
	}
	return "☐"
}

func (gs glyphSet) cursor() string {
	if gs == glyphSetASCII {
		return ">"
	}
	return "›"
}

func (gs glyphSet) ellipsis() string {
	if gs == glyphSetASCII {
		return "..."
	}
	return "…"
}

func (gs glyphSet) separator() string {
	if gs == glyphSetASCII {
		return "|"
	}
	return "│"
}
