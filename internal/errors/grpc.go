package errors

import (
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain identifies this service in ErrorInfo details
const ErrorDomain = "rpg-fitness"

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if As(err, &customErr) {
		st := status.New(customErr.Code.GRPCCode(), customErr.Message)

		// Metadata travels as an ErrorInfo detail
		if len(customErr.Meta) > 0 {
			if withInfo, err := st.WithDetails(errorInfo(customErr)); err == nil {
				st = withInfo
			}
		}

		return st.Err()
	}

	return status.Error(codes.Internal, err.Error())
}

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeOK:
		return codes.OK
	case CodeCanceled:
		return codes.Canceled
	case CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeNotFound:
		return codes.NotFound
	case CodeAlreadyExists:
		return codes.AlreadyExists
	case CodeFailedPrecondition:
		return codes.FailedPrecondition
	case CodeInternal:
		return codes.Internal
	case CodeUnavailable:
		return codes.Unavailable
	case CodeDataLoss:
		return codes.DataLoss
	default:
		return codes.Unknown
	}
}

// errorInfo carries the error code as the reason and stringifies the metadata.
// Validation maps flatten to "field: message" strings.
func errorInfo(e *Error) *errdetails.ErrorInfo {
	meta := make(map[string]string, len(e.Meta))
	for k, v := range e.Meta {
		if fields, ok := v.(map[string][]string); ok {
			for field, msgs := range fields {
				meta[field] = strings.Join(msgs, ", ")
			}
			continue
		}
		meta[k] = fmt.Sprint(v)
	}
	return &errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   ErrorDomain,
		Metadata: meta,
	}
}
