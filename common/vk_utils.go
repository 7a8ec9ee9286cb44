package common

// Provides general helper functions for comparisons and conversions

// AllOfAinB comparison function to ensure a given list is fully contained in another. This is
// mainly used to check for extension and layer support during the initialization process.
func AllOfAinB(a []string, b []string) bool {
	return len(MissingOfAinB(a, b)) == 0
}

// MissingOfAinB returns the entries of a that are not in b, in the order of a.
func MissingOfAinB(a []string, b []string) []string {
	var missing []string
	for _, _a := range a {
		isIn := false
		for _, _b := range b {
			if TerminatedStr(_a) == TerminatedStr(_b) {
				isIn = true
				break
			}
		}
		if !isIn {
			missing = append(missing, _a)
		}
	}
	return missing
}

// TerminatedStr ensures the given string is \x00 terminated as vulkan expects this in certain structs
func TerminatedStr(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

// TerminatedStrs returns terminated copies, leaving strs untouched.
func TerminatedStrs(strs []string) []string {
	out := make([]string, len(strs))
	for i := range strs {
		out[i] = TerminatedStr(strs[i])
	}
	return out
}
