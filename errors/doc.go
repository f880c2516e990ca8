// Package errors provides structured error types for the cairo-io module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the expected/received shapes and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("request", "amount").
//		Got("string").
//		Expected("u32").
//		Detail("expected unsigned integer for u32").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingField(path, "amount", "Input")
//	err := errors.SchemaNotFound(errors.PhaseDecode, path, "Nested")
//
// Encode-side errors are returned to the caller. Decode-side stream desynchronization
// is reported by panicking with a KindDesync error, because continuing would
// misinterpret unrelated VM values.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
