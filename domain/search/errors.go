package search

import "fmt"

// Code is a stable negative identifier for a whole-request failure. The
// values mirror the error table of the wire protocol; callers that consume
// the encoded form rely on them staying fixed.
type Code int

const (
	// CodeBadImage marks an unsupported path or image format.
	CodeBadImage Code = -1
	// CodeLoadFailed marks a pattern file that could not be loaded.
	CodeLoadFailed Code = -2
	// CodeCaptureFailed marks a failed screen capture.
	CodeCaptureFailed Code = -7
	// CodeExtractFailed marks a capture or decode that produced no pixels.
	CodeExtractFailed Code = -8
	// CodeInvalidRegion marks a search region with non-positive extent.
	CodeInvalidRegion Code = -9
	// CodeInvalidScale marks a scale factor producing an invalid size.
	CodeInvalidScale Code = -10
	// CodeResultTooLarge marks an encoded result exceeding the answer cap.
	CodeResultTooLarge Code = -11
)

// Message returns the caller-visible description for a code.
func (c Code) Message() string {
	switch c {
	case CodeBadImage:
		return "Invalid path or image format"
	case CodeLoadFailed:
		return "Failed to load image from file"
	case CodeCaptureFailed:
		return "Screen capture failed"
	case CodeExtractFailed:
		return "Failed to get pixel data"
	case CodeInvalidRegion:
		return "Invalid search region specified"
	case CodeInvalidScale:
		return "Scaling produced an invalid image size"
	case CodeResultTooLarge:
		return "Result exceeds the answer buffer"
	default:
		return "Unknown error"
	}
}

// RequestError is a whole-request failure carrying its wire code.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type RequestError struct {
	Code  Code
	cause error
}

func (e *RequestError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code.Message(), e.cause)
	}
	return e.Code.Message()
}

func (e *RequestError) Unwrap() error { return e.cause }

// Err wraps cause as a RequestError carrying this code. cause may be nil.
func (c Code) Err(cause error) *RequestError {
	return &RequestError{Code: c, cause: cause}
}
