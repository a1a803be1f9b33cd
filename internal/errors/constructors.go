package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ClassifiedError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Records errors

func RecordsNotFound(path string) *ClassifiedError {
	return New(CategoryRecords, SeverityFatal, "records file not found").
		WithContext("path", path)
}

func RecordsInvalid(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryRecords, SeverityFatal, "records file invalid").
		WithContext("path", path)
}

// Pipeline errors

func DescriptorRead(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "descriptor read failed").
		WithContext("path", path)
}

func RenderFailed(artifact string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryRender, SeverityFatal, "artifact rendering failed").
		WithContext("artifact", artifact)
}

func WriteFailed(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "artifact write failed").
		WithContext("path", path)
}

func StageFailed(stage string, cause error) *ClassifiedError {
	if ce, ok := As(cause); ok {
		return ce.WithContext("stage", stage)
	}
	return Wrap(cause, CategoryInternal, SeverityFatal, "pipeline stage failed").
		WithContext("stage", stage)
}

// Runtime errors

func Canceled(stage string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryRuntime, SeverityError, "run canceled").
		WithContext("stage", stage)
}
