package utils

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

func asciiOrQmark(r rune) rune {
	if r > 31 && r < 127 {
		return r
	}
	return '?'
}

var printableASCII = runes.Map(asciiOrQmark)

// ToPrintableASCII replaces every unprintable or non ascii rune with '?'
func ToPrintableASCII(s string) string {
	result, _, err := transform.String(printableASCII, s)
	if err != nil {
		panic(err)
	}
	return result
}
