package mrkdwn

import "os"

// Option configures a conversion.
type Option func(*config)

type config struct {
	log Logger
}

func defaultConfig() config {
	return config{log: NopLogger()}
}

// WithLogger injects a diagnostic sink. The sink observes state transitions
// and recovered faults; it never alters the conversion result.
func WithLogger(log Logger) Option {
	return func(cfg *config) {
		if log != nil {
			cfg.log = log
		}
	}
}

// WithDiagnostics enables a stderr sink at the given verbosity, one of
// trace, debug, info, warn, error, off or all. Unknown names leave the
// default no-op sink in place.
func WithDiagnostics(verbosity string) Option {
	return func(cfg *config) {
		log, err := NewLogger(os.Stderr, verbosity)
		if err != nil {
			return
		}
		cfg.log = log
	}
}
