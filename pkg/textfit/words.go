package textfit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// wordPattern tokenizes text into wrappable units: CJK characters one by
// one, digit runs, and Latin letter runs with internal apostrophes.
var wordPattern = regexp.MustCompile(`[\x{4e00}-\x{faff}]|[0-9]+|[a-zA-Z]+'*[a-z]*`)

// SplitWords splits content into the atomic units the wrap search may place
// on separate lines. A single word is never broken across lines.
func SplitWords(content string) []string {
	return wordPattern.FindAllString(content, -1)
}

func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0xfaff
}

// lastRune returns the final rune of s, or utf8.RuneError for empty input.
func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// needsSpace reports whether a space separates two adjacent words when they
// are joined on one line. CJK characters join without spaces.
func needsSpace(prev, next string) bool {
	return !isCJK(lastRune(prev)) && !isCJK(firstRune(next))
}

// joinWords reassembles words into a single line, inserting spaces only
// between non-CJK neighbors.
func joinWords(words []string) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for i := 1; i < len(words); i++ {
		if needsSpace(words[i-1], words[i]) {
			b.WriteByte(' ')
		}
		b.WriteString(words[i])
	}
	return b.String()
}

// runeLen returns the display length of a word in runes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// wrapWords greedily packs words into lines of at most target runes,
// counting joining spaces. A word longer than target gets a line of its own;
// words are never broken.
func wrapWords(words []string, target float64) []string {
	var lines []string
	var line []string
	length := 0

	for _, w := range words {
		cost := runeLen(w)
		if len(line) > 0 && needsSpace(line[len(line)-1], w) {
			cost++
		}
		if len(line) > 0 && float64(length+cost) > target {
			lines = append(lines, joinWords(line))
			line = line[:0]
			length = 0
			cost = runeLen(w)
		}
		line = append(line, w)
		length += cost
	}
	if len(line) > 0 {
		lines = append(lines, joinWords(line))
	}
	return lines
}

// wrapTarget computes the width budget in runes for a candidate line count:
// the total assembled length divided by n, floored at the longest single
// word so no line is forced to break one.
func wrapTarget(words []string, n int) float64 {
	total := runeLen(joinWords(words))
	longest := 0
	for _, w := range words {
		if l := runeLen(w); l > longest {
			longest = l
		}
	}
	t := float64(total) / float64(n)
	if float64(longest) > t {
		t = float64(longest)
	}
	return t
}
