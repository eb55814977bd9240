package engineering

// SI prefixes for each exponent, indexed by magnitude.
// The tables are frozen; 'u' is accepted on input as an alias for 'μ'
// but never emitted.
var (
	posPrefix = [MaxExp + 1]string{"", "k", "M", "G", "T", "P", "E", "Z", "Y", "R", "Q"}
	negPrefix = [-MinExp + 1]string{"", "m", "μ", "n", "p", "f", "a", "z", "y", "r", "q"}
)

// prefixOf returns the SI prefix for an exponent in [MinExp, MaxExp].
func prefixOf(exp int) string {
	if exp < 0 {
		return negPrefix[-exp]
	}
	return posPrefix[exp]
}

// exponentOf returns the exponent denoted by an SI prefix rune.
func exponentOf(r rune) (exp int, ok bool) {
	switch r {
	case 'k':
		return 1, true
	case 'M':
		return 2, true
	case 'G':
		return 3, true
	case 'T':
		return 4, true
	case 'P':
		return 5, true
	case 'E':
		return 6, true
	case 'Z':
		return 7, true
	case 'Y':
		return 8, true
	case 'R':
		return 9, true
	case 'Q':
		return 10, true
	case 'm':
		return -1, true
	case 'u', 'μ':
		return -2, true
	case 'n':
		return -3, true
	case 'p':
		return -4, true
	case 'f':
		return -5, true
	case 'a':
		return -6, true
	case 'z':
		return -7, true
	case 'y':
		return -8, true
	case 'r':
		return -9, true
	case 'q':
		return -10, true
	}
	return 0, false
}
