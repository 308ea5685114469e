package cluster

import (
	"maps"
	"slices"
)

// LatinVowels holds variants of a, e, i, o, u and y used by Latin-based
// alphabets. It is the default vowel set.
var LatinVowels = []rune{
	'a', 'à', 'á', 'â', 'ã', 'ä', 'å', 'ā', 'ă', 'ą', 'ǎ', 'æ', 'ǣ', 'ǟ', 'ǡ', 'ǻ', 'ǽ', 'ȁ', 'ȧ',
	'e', 'è', 'é', 'ê', 'ë', 'ē', 'ĕ', 'ė', 'ę', 'ě', 'ǝ', 'ɘ', 'ə', 'ɇ', 'ȅ', 'ȇ', 'ȩ',
	'i', 'ì', 'í', 'î', 'ï', 'ĩ', 'ī', 'ĭ', 'į', 'ı', 'ĳ', 'ǐ', 'ȉ', 'ȋ', 'ɨ',
	'o', 'ò', 'ó', 'ô', 'õ', 'ö', 'ø', 'ǿ', 'ō', 'ŏ', 'ő', 'œ', 'ǒ', 'ǫ', 'ǭ', 'ȍ', 'ȏ', 'ȫ', 'ȭ', 'ȯ', 'ȱ',
	'u', 'ù', 'ú', 'ü', 'ũ', 'ū', 'ŭ', 'ů', 'ű', 'ǔ', 'ǖ', 'ǘ', 'ǚ', 'ǜ', 'ų', 'ȕ', 'ȗ',
	'y', 'ý', 'ÿ', 'ŷ', 'ȳ', 'ɏ', 'ʎ',
}

// EnglishVowels treats y and w as vowels, as they often are in English names.
var EnglishVowels = []rune{'a', 'e', 'i', 'o', 'u', 'y', 'w'}

// Clusterizer splits text into alternating vowel and consonant clusters.
type Clusterizer struct {
	vowels map[rune]struct{}
}

// NewClusterizer returns a Clusterizer for the given vowels, or for
// LatinVowels if none are given.
func NewClusterizer(vowels ...rune) *Clusterizer {
	if len(vowels) == 0 {
		vowels = LatinVowels
	}
	c := &Clusterizer{vowels: make(map[rune]struct{}, len(vowels))}
	for _, v := range vowels {
		c.vowels[v] = struct{}{}
	}
	return c
}

// IsVowel reports whether r belongs to the vowel set.
func (c *Clusterizer) IsVowel(r rune) bool {
	_, ok := c.vowels[r]
	return ok
}

// Vowels returns the vowel set in ascending order.
func (c *Clusterizer) Vowels() []rune {
	return slices.Sorted(maps.Keys(c.vowels))
}

// Clusterize splits s into maximal runs of vowels and consonants, in order.
// The class of the first rune decides the class of the first cluster; the
// classes alternate from there. Empty input yields nil.
func (c *Clusterizer) Clusterize(s string) []string {
	if s == "" {
		return nil
	}
	var clusters []string
	start := 0
	vowel := false
	for i, r := range s {
		isVowel := c.IsVowel(r)
		if i == 0 {
			vowel = isVowel
			continue
		}
		if isVowel != vowel {
			clusters = append(clusters, s[start:i])
			start = i
			vowel = isVowel
		}
	}
	return append(clusters, s[start:])
}

var defaultClusterizer = NewClusterizer()

// Clusterize splits s using LatinVowels.
func Clusterize(s string) []string {
	return defaultClusterizer.Clusterize(s)
}
