package styles

import (
	"sync"

	"go.uber.org/zap"
)

// Option configures package-wide compilation behaviour.
type Option func(*config)

type config struct {
	compiler Compiler
	logger   *zap.Logger
}

var (
	configMu sync.RWMutex
	active   = defaultConfig()
)

func defaultConfig() config {
	return config{
		compiler: NewParserCompiler(),
		logger:   zap.NewNop(),
	}
}

// WithCompiler swaps the compiler used for every fragment compiled after the
// call. nil restores the default parser compiler.
func WithCompiler(compiler Compiler) Option {
	return func(cfg *config) {
		if compiler == nil {
			compiler = NewParserCompiler()
		}
		cfg.compiler = compiler
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		cfg.logger = logger.Named("styles")
	}
}

// Configure applies options to the package configuration. Already memoised
// stylesheets are unaffected.
func Configure(options ...Option) {
	configMu.Lock()
	defer configMu.Unlock()

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&active)
	}
}

func current() config {
	configMu.RLock()
	defer configMu.RUnlock()
	return active
}
