package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client/validation errors
//   1000-1999: assistant pipeline
//   2000-2999: miss log / admin

const (
	BadRequestBase    ErrorCode = 0
	PipelineErrorBase ErrorCode = 1000
	AdminErrorBase    ErrorCode = 2000
)

// Client/validation errors start at 0
const (
	InvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	MissingParams                                        // 1
	UnsupportedAudio                                     // 2
)

// Pipeline errors start at 1000
const (
	PipelineInternal       ErrorCode = PipelineErrorBase + iota // 1000
	MissingSource                                               // 1001
	ModelInvocationFailure                                      // 1002
	MalformedModelOutput                                        // 1003
	SynthesisFailure                                            // 1004
)

// Miss log / admin errors start at 2000
const (
	LogStoreSchemaMismatch  ErrorCode = AdminErrorBase + iota // 2000
	LogStoreReadFailure                                       // 2001
	UnauthorizedAdminAccess                                   // 2002
)

// SuccessCode classifies successful API responses
type SuccessCode int

const (
	OK SuccessCode = 200
)
