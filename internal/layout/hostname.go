package layout

import "strings"

const (
	maxHostnameLen = 253
	maxLabelLen    = 63
)

// ValidHostname reports whether name is a valid device hostname: at most
// 253 characters of dot-separated labels, each 1-63 characters of letters,
// digits and hyphens, not starting or ending with a hyphen.
func ValidHostname(name string) bool {
	if name == "" || len(name) > maxHostnameLen {
		return false
	}

	for label := range strings.SplitSeq(name, ".") {
		if !validLabel(label) {
			return false
		}
	}

	return true
}

func validLabel(label string) bool {
	if label == "" || len(label) > maxLabelLen {
		return false
	}

	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for i := range len(label) {
		c := label[i]

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}

	return true
}
