// internal/pdf/rtl.go
package pdf

// RTL unicode ranges: Hebrew, Arabic, Hebrew presentation forms.
var rtlRanges = [][2]rune{
	{0x0590, 0x05FF},
	{0x0600, 0x06FF},
	{0xFB1D, 0xFB4F},
}

// ContainsRTL reports whether the text contains Hebrew or Arabic code points.
func ContainsRTL(text string) bool {
	for _, r := range text {
		for _, rng := range rtlRanges {
			if r >= rng[0] && r <= rng[1] {
				return true
			}
		}
	}
	return false
}

// NormalizeRTL reverses text containing RTL characters so core-font
// rendering, which writes left to right, displays it in reading order.
// LTR-only text passes through unchanged.
func NormalizeRTL(text string) string {
	if !ContainsRTL(text) {
		return text
	}
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
