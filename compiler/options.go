package compiler

// Option configures a Compile/CompileSource call, following the
// functional-options idiom of LdDl-osm2ch/parser.go's
// NewParser(fileName string, options ...func(*Parser)).
type Option func(*config)

type config struct {
	verbose bool
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithVerbose enables progress logging to stdout during compilation,
// matching the teacher's verbose-flag-gated fmt.Printf/time.Since
// reporting in osm_prepare.go.
func WithVerbose(verbose bool) Option {
	return func(c *config) { c.verbose = verbose }
}
