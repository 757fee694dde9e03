package util

import "strings"

// SubjectMatches reports whether subj is covered by pattern. Patterns may use
// the NATS wildcards * (exactly one token) and > (one or more trailing
// tokens).
func SubjectMatches(pattern, subj string) bool {
	for {
		pt, prest, pmore := strings.Cut(pattern, ".")
		st, srest, smore := strings.Cut(subj, ".")
		switch {
		case pt == ">":
			return st != ""
		case st == "", pt != "*" && pt != st:
			return false
		case !pmore || !smore:
			return pmore == smore
		}
		pattern, subj = prest, srest
	}
}
