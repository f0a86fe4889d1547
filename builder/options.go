package builder

import "github.com/ksymtab/ksymtab/internal/options"

// Config holds the token dictionary tuning knobs for a Builder.
type Config struct {
	TokenLengths []int
	MaxTokens    int
}

// Option configures a Builder at construction time.
type Option = options.Option[*Config]

// WithTokenLengths overrides the candidate prefix-length ladder the token
// dictionary scans. The default, token.DefaultLengths, suits typical Linux
// kernel symbol naming; callers building tables for other mangling schemes
// may want a different ladder.
func WithTokenLengths(lengths []int) Option {
	return options.NoError[*Config](func(c *Config) {
		c.TokenLengths = lengths
	})
}

// WithMaxTokens overrides the dictionary size cap. Values above
// token.MaxTokens are clamped back down to it; the format's token ids
// cannot address more than that regardless of what is requested here.
func WithMaxTokens(n int) Option {
	return options.NoError[*Config](func(c *Config) {
		c.MaxTokens = n
	})
}
