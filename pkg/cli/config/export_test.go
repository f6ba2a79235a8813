package config

// NewMappingForTest builds a Mapping with explicit values, bypassing flag
// parsing.
func NewMappingForTest(path, termMarker string) *Mapping {
	return &Mapping{path: path, termMarker: termMarker}
}

// NewLoggerForTest builds a Logger with explicit values.
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
