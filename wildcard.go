package texttools

import "strings"

// MatchWildcard reports whether s matches a glob-style pattern: * matches any
// run of characters (including none), ? matches exactly one character, and
// [abc] / [a-z] / [!abc] match a character class. A pattern containing none
// of these matches by exact string equality, as does a pattern with a
// malformed class, so a stray "[" never turns filtering into an error.
func MatchWildcard(pattern, s string) bool {
	if !strings.ContainsAny(pattern, `*?[`) {
		return pattern == s
	}
	if !validPattern(pattern) {
		return pattern == s
	}
	return matchGlob(pattern, s)
}

// validPattern checks that every character class has a closing bracket.
func validPattern(p string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] != '[' {
			continue
		}
		j := i + 1
		if j < len(p) && (p[j] == '!' || p[j] == '^') {
			j++
		}
		if j < len(p) && p[j] == ']' {
			// first ] is a literal class member
			j++
		}
		for j < len(p) && p[j] != ']' {
			j++
		}
		if j == len(p) {
			return false
		}
		i = j
	}
	return true
}

// matchGlob runs the match with single-star backtracking.
func matchGlob(p, s string) bool {
	i, j := 0, 0
	starP, starS := -1, 0
	for j < len(s) {
		if i < len(p) {
			switch p[i] {
			case '*':
				starP, starS = i, j
				i++
				continue
			case '?':
				i++
				j++
				continue
			case '[':
				if ok, next := classMatch(p, i, s[j]); ok {
					i = next
					j++
					continue
				}
			default:
				if p[i] == s[j] {
					i++
					j++
					continue
				}
			}
		}
		if starP < 0 {
			return false
		}
		starS++
		i = starP + 1
		j = starS
	}
	for i < len(p) && p[i] == '*' {
		i++
	}
	return i == len(p)
}

// classMatch matches one character against the class starting at p[i] == '['.
// It returns whether the character matched and the index just past the class.
func classMatch(p string, i int, c byte) (bool, int) {
	j := i + 1
	negate := false
	if j < len(p) && (p[j] == '!' || p[j] == '^') {
		negate = true
		j++
	}
	matched := false
	first := true
	for j < len(p) && (p[j] != ']' || first) {
		first = false
		lo := p[j]
		hi := lo
		if j+2 < len(p) && p[j+1] == '-' && p[j+2] != ']' {
			hi = p[j+2]
			j += 3
		} else {
			j++
		}
		if lo <= c && c <= hi {
			matched = true
		}
	}
	return matched != negate, j + 1
}
