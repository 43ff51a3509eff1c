package parser

// Default resource limits.
const (
	DefaultMaxInputBytes = 4 << 20
	DefaultMaxDepth      = 512
)

// Limits bounds the resources a single parse may use.
type Limits struct {
	MaxInputBytes int
	MaxDepth      int
}

// DefaultLimits returns the limits used when no option overrides them.
func DefaultLimits() Limits {
	return Limits{MaxInputBytes: DefaultMaxInputBytes, MaxDepth: DefaultMaxDepth}
}

// Option configures Tokenize and the parse entry points.
type Option func(*Limits)

// WithLimits replaces both limits. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(dst *Limits) {
		if l.MaxInputBytes > 0 {
			dst.MaxInputBytes = l.MaxInputBytes
		}
		if l.MaxDepth > 0 {
			dst.MaxDepth = l.MaxDepth
		}
	}
}

// WithMaxDepth bounds the nesting depth of expressions and queries.
func WithMaxDepth(n int) Option {
	return func(l *Limits) { l.MaxDepth = n }
}

// WithMaxInputBytes bounds the size of the SQL text.
func WithMaxInputBytes(n int) Option {
	return func(l *Limits) { l.MaxInputBytes = n }
}

func buildLimits(opts []Option) Limits {
	l := DefaultLimits()
	for _, opt := range opts {
		opt(&l)
	}
	return l
}
