package runtime

import (
	ac "github.com/petar-dambovaliev/aho-corasick"
)

// KeywordSet matches lines containing at least one of a fixed set of
// literal words. All words are searched in a single pass over the line
// with an Aho-Corasick automaton.
type KeywordSet struct {
	ac    *ac.AhoCorasick
	words []string
}

// NewKeywordSet builds a matcher for words. Empty words are ignored since
// they would match every line. Returns nil when no word remains.
func NewKeywordSet(words []string, ignoreCase bool) *KeywordSet {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: ignoreCase,
		MatchKind:            ac.LeftMostLongestMatch,
	})
	automaton := builder.Build(kept)

	return &KeywordSet{ac: &automaton, words: kept}
}

// Words returns the non-empty words of the set.
func (k *KeywordSet) Words() []string {
	return k.words
}

// MatchString reports whether s contains any word of the set.
func (k *KeywordSet) MatchString(s string) bool {
	return len(k.ac.FindAll(s)) > 0
}

// Match reports whether line contains any word of the set.
func (k *KeywordSet) Match(line []byte) bool {
	return k.MatchString(string(line))
}

// Find returns the words found in s, in order of appearance.
func (k *KeywordSet) Find(s string) []string {
	matches := k.ac.FindAll(s)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		idx := m.Pattern()
		if idx >= 0 && idx < len(k.words) {
			out = append(out, k.words[idx])
		}
	}
	return out
}
