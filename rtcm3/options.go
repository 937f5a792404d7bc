package rtcm3

import (
	"strconv"
	"strings"
)

// hasOpt reports whether opt contains the space-separated flag name.
// Decoder options travel packed into one string (e.g. "-EPHALL -STA=1234")
// so they can be passed through configuration untouched.
func hasOpt(opt, name string) bool {
	for _, field := range strings.Fields(opt) {
		if field == name {
			return true
		}
	}
	return false
}

// optIntValue looks for "-STA=nnn"-shaped fields and returns nnn.
func optIntValue(opt, prefix string) (int, bool) {
	for _, field := range strings.Fields(opt) {
		if strings.HasPrefix(field, prefix) {
			n, err := strconv.Atoi(strings.TrimPrefix(field, prefix))
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
