package queue

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fold lowercases s for case-insensitive comparisons of column names,
// variant values and glob patterns.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// equalFold compares two strings under fold.
func equalFold(a, b string) bool {
	return fold(a) == fold(b)
}

// globMatch reports whether value matches a shell-style pattern.
// Supports *, ? and [...] classes ([!...] negates). Unlike filepath.Match,
// '*' also crosses '/' so free-text values such as "BUG: a/b" still match "bug:*".
// Both arguments are folded first, so matching is case-insensitive.
func globMatch(pattern, value string) bool {
	re, err := compileGlob(fold(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(fold(value))
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`(?s)^`)

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				// Unterminated class matches a literal bracket
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(translateClass(runes[i+1 : end]))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString(`$`)
	return regexp.Compile(b.String())
}

// classEnd returns the index of the ']' closing the class opened at start, or -1.
// A ']' directly after '[' or '[!' is part of the class.
func classEnd(runes []rune, start int) int {
	j := start + 1
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	if j >= len(runes) {
		return -1
	}
	return j
}

func translateClass(class []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range class {
		switch {
		case i == 0 && r == '!':
			b.WriteByte('^')
		case r == '^' && i == 0, r == ']', r == '[', r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// MatchGlob reports whether value matches pattern using the same
// case-insensitive glob rules as Colours and Record.Matches.
func MatchGlob(pattern, value string) bool {
	return globMatch(pattern, value)
}
