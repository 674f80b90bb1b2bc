package testhelper

// TestLogger is a no-op logger implementation for tests
type TestLogger struct{}

// NewTestLogger creates a logger that discards everything
func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) LogInfo(msg string, fields map[string]interface{})  {}
func (l *TestLogger) LogDebug(msg string, fields map[string]interface{}) {}
func (l *TestLogger) LogWarn(msg string, fields map[string]interface{})  {}

func (l *TestLogger) LogError(err error, msg string) error {
	return err
}

func (l *TestLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return err
}

func (l *TestLogger) LogFatal(err error, context string) {}
