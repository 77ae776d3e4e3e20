package logger

// Logger is the component-scoped structured logger used across the application.
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// NoOpLogger discards everything. Tests use it where log output is irrelevant.
type NoOpLogger struct{}

func (NoOpLogger) Info(component, message string, fields map[string]interface{})    {}
func (NoOpLogger) Error(component string, err error, fields map[string]interface{}) {}
func (NoOpLogger) Warning(component, message string, fields map[string]interface{}) {}
func (NoOpLogger) Debug(component, message string, fields map[string]interface{})   {}
