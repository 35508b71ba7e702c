package linalg

// Option adjusts naming behavior of an operation. Options irrelevant to an
// operation are ignored.
type Option func(*opConfig)

type opConfig struct {
	bases     map[string]string
	keep      map[string]struct{}
	outAppend string
	hasAppend bool
}

func newConfig(opts []Option) *opConfig {
	cfg := &opConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithNewDimName overrides the default base used when minting a fresh output
// dimension name. For example, WithNewDimName("inner", "latent") makes QR
// name the shared Q/R dimension "latent". The override is still subject to
// collision resolution against existing dimension names.
func WithNewDimName(defaultBase, name string) Option {
	return func(c *opConfig) {
		if c.bases == nil {
			c.bases = make(map[string]string)
		}
		c.bases[defaultBase] = name
	}
}

// KeepDims excludes the given dimensions from einsum summation unless they
// are explicitly listed in a subscript.
func KeepDims(dims ...string) Option {
	return func(c *opConfig) {
		if c.keep == nil {
			c.keep = make(map[string]struct{}, len(dims))
		}
		for _, d := range dims {
			c.keep[d] = struct{}{}
		}
	}
}

// OutAppend sets the fmt pattern (with one %d verb) appended to repeated
// einsum output dimension names. The default is "%d": the second occurrence
// of dimension "a" becomes "a2". The first occurrence always keeps the
// original name and its coordinates. An empty pattern keeps repeated names.
func OutAppend(pattern string) Option {
	return func(c *opConfig) {
		c.outAppend = pattern
		c.hasAppend = true
	}
}

func (c *opConfig) base(def string) string {
	if c.bases != nil {
		if b, ok := c.bases[def]; ok && b != "" {
			return b
		}
	}
	return def
}

func (c *opConfig) appendPattern() string {
	if c.hasAppend {
		return c.outAppend
	}
	return "%d"
}
