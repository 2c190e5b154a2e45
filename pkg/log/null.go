package log

// null is a Logger that discards everything. It is the default logger for
// the core so that constructing a GameBoy never has side effects unless a
// front-end opts in via WithLogger.
type null struct{}

// Null returns a Logger that discards all output.
func Null() Logger {
	return &null{}
}

func (null) Infof(string, ...interface{})  {}
func (null) Errorf(string, ...interface{}) {}
func (null) Debugf(string, ...interface{}) {}
