package dac

// Logger is the interface used for debug messages.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nullLoggerImpl struct{}

func (nullLoggerImpl) Printf(format string, args ...interface{}) {}

// nullLogger is a logger that does nothing.
var nullLogger = nullLoggerImpl{}

// getLogger always returns a logger.
func getLogger(cfg Config) Logger {
	if cfg.Debug == nil {
		return nullLogger
	} else {
		return cfg.Debug
	}
}

// regsDebug traces register accesses through a Logger.
type regsDebug struct {
	log  Logger
	regs Registers
}

func (r *regsDebug) Read8(off uint8) uint8 {
	v := r.regs.Read8(off)
	r.log.Printf("dac: rd8  [%#02x] -> %#02x", off, v)
	return v
}

func (r *regsDebug) Write8(off uint8, v uint8) {
	r.log.Printf("dac: wr8  [%#02x] <- %#02x", off, v)
	r.regs.Write8(off, v)
}

func (r *regsDebug) Read16(off uint8) uint16 {
	v := r.regs.Read16(off)
	r.log.Printf("dac: rd16 [%#02x] -> %#04x", off, v)
	return v
}

func (r *regsDebug) Write16(off uint8, v uint16) {
	r.log.Printf("dac: wr16 [%#02x] <- %#04x", off, v)
	r.regs.Write16(off, v)
}
