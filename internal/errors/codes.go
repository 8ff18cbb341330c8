package errors

// Code represents an error code
type Code string

// Error codes used by the engine. Each maps onto a gRPC status code.
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Metadata keys shared by every layer so logs and ErrorInfo details line up
const (
	MetaUserID   = "user_id"
	MetaQuestID  = "quest_id"
	MetaSkillID  = "skill_id"
	MetaPillar   = "pillar"
	MetaArgument = "argument"
	MetaIntent   = "intent"

	// MetaValidation holds the field -> messages map of a failed Validate
	MetaValidation = "validation_errors"
)
