package lawk

import "github.com/kolkov/lawk/internal/runtime"

// filter decides which raw lines reach the splitter.
// A nil *filter accepts every line.
type filter struct {
	re     *runtime.Regex
	words  *runtime.KeywordSet
	invert bool
}

// newFilter compiles the pattern and keyword set of cfg once.
// Returns nil when cfg filters nothing.
func newFilter(cfg *Config) (*filter, error) {
	f := &filter{invert: cfg.Invert}

	if cfg.Pattern != "" {
		re, err := runtime.CompileWithConfig(cfg.Pattern, cfg.filterConfig())
		if err != nil {
			return nil, &Error{Kind: PatternCompileError, Err: err}
		}
		f.re = re
	}
	f.words = runtime.NewKeywordSet(cfg.Keywords, cfg.IgnoreCase)

	if f.re == nil && f.words == nil {
		return nil, nil
	}
	return f, nil
}

// accept reports whether line passes both the pattern and the keyword set,
// negated when inverting.
func (f *filter) accept(line []byte) bool {
	if f == nil {
		return true
	}
	ok := true
	if f.re != nil {
		ok = f.re.Match(line)
	}
	if ok && f.words != nil {
		ok = f.words.Match(line)
	}
	return ok != f.invert
}
