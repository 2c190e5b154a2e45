package gameboy

import "github.com/rustyboy-go/rustyboy/pkg/log"

// config collects the values New's functional options populate, following
// the teacher's GameBoyOpt pattern.
type config struct {
	logger log.Logger
	sram   []byte
	trace  bool
}

// Option configures a GameBoy at construction time.
type Option func(*config)

// WithLogger attaches a logger for boot and runtime diagnostics. The
// default is log.Null(), so embedding a GameBoy produces no output unless
// asked.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTrace logs one disassembled instruction per CPU step at the
// logger's Debugf level (see internal/disasm), for cmd/rustyboy's -trace
// flag. The logger must itself be constructed with log.Verbose() for
// anything to reach stdout.
func WithTrace(enabled bool) Option {
	return func(c *config) { c.trace = enabled }
}

// WithSRAM seeds the cartridge's battery-backed RAM from a previously
// persisted save (see internal/persist), before the cartridge is
// constructed.
func WithSRAM(data []byte) Option {
	return func(c *config) { c.sram = data }
}
