package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "quest not found",
			expected: "NOT_FOUND: quest not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "sets must be a number",
			expected: "INVALID_ARGUMENT: sets must be a number",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestDomainConstructors() {
	testCases := []struct {
		name    string
		err     *errors.Error
		code    errors.Code
		message string
		metaKey string
		metaVal string
	}{
		{
			name:    "quest not found",
			err:     errors.QuestNotFound("q-7"),
			code:    errors.CodeNotFound,
			message: "quest q-7 not found",
			metaKey: errors.MetaQuestID,
			metaVal: "q-7",
		},
		{
			name:    "custom skill not found",
			err:     errors.SkillNotFound("custom skill", "custom-rope"),
			code:    errors.CodeNotFound,
			message: "custom skill custom-rope not found",
			metaKey: errors.MetaSkillID,
			metaVal: "custom-rope",
		},
		{
			name:    "invalid pillar",
			err:     errors.InvalidPillar("cardio"),
			code:    errors.CodeInvalidArgument,
			message: `invalid pillar "cardio"`,
			metaKey: errors.MetaPillar,
			metaVal: "cardio",
		},
		{
			name:    "missing tool argument",
			err:     errors.MissingArgument("questId"),
			code:    errors.CodeInvalidArgument,
			message: "questId is required",
			metaKey: errors.MetaArgument,
			metaVal: "questId",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.code, tc.err.Code)
			s.Equal(tc.message, tc.err.Message)
			s.Equal(tc.metaVal, tc.err.Meta[tc.metaKey])
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("database connection failed")
	wrapped := errors.Wrap(baseErr, "failed to load snapshot")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load snapshot", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.QuestNotFound("q-1")
	wrapped := errors.Wrapf(baseErr, "failed to complete quest for %s", "user-1")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to complete quest for user-1", wrapped.Message)
	s.Equal("q-1", wrapped.Meta[errors.MetaQuestID])
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("snapshot missing").WithMeta(errors.MetaUserID, "user-1")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeDataLoss, "snapshot is corrupt")

	s.Equal(errors.CodeDataLoss, wrapped.Code)
	s.Equal("snapshot is corrupt", wrapped.Message)
	s.Equal("user-1", wrapped.Meta[errors.MetaUserID])
	s.True(errors.IsDataLoss(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.QuestNotFound("a")
	err2 := errors.NotFound("other")
	err3 := errors.InvalidArgument("test")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", errors.Wrap(errors.QuestNotFound("q"), "wrapped"), errors.IsNotFound},
		{"invalid argument", errors.InvalidPillar("x"), errors.IsInvalidArgument},
		{"failed precondition", errors.FailedPreconditionf("quest %s is already %s", "q", "completed"), errors.IsFailedPrecondition},
		{"unavailable", errors.Unavailablef("gateway returned %d", 502), errors.IsUnavailable},
		{"data loss", errors.DataLossf("snapshot %s is corrupt", "u"), errors.IsDataLoss},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(tc.check(tc.err))
			s.False(tc.check(errors.Internal("other")))
		})
	}
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	wrapped := errors.Wrap(errors.SkillNotFound("skill", "push-l9-s9"), "wrapped")

	s.Equal("push-l9-s9", errors.GetMeta(wrapped)[errors.MetaSkillID])
	s.Nil(errors.GetMeta(fmt.Errorf("standard error")))
	s.Nil(errors.GetMeta(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.MissingArgument("name")
	wrapped := errors.Wrap(err, "add_custom_skill failed")
	stdErr := fmt.Errorf("standard error")

	s.Equal("name is required", errors.GetMessage(err))
	s.Equal("add_custom_skill failed", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(stdErr))
	s.Empty(errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	st, ok := status.FromError(errors.ToGRPCError(errors.InvalidArgument("message is required")))
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Equal("message is required", st.Message())
	s.Empty(st.Details())

	plain, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, plain.Code())

	already := status.Error(codes.Unavailable, "down")
	s.Equal(already, errors.ToGRPCError(already))
	s.Nil(errors.ToGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCErrorInfoCarriesMeta() {
	err := errors.QuestNotFound("q-7").WithMeta(errors.MetaUserID, "user-1")

	st, ok := status.FromError(errors.ToGRPCError(err))
	s.Require().True(ok)
	s.Require().Len(st.Details(), 1)

	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Equal(string(errors.CodeNotFound), info.GetReason())
	s.Equal(errors.ErrorDomain, info.GetDomain())
	s.Equal("q-7", info.GetMetadata()[errors.MetaQuestID])
	s.Equal("user-1", info.GetMetadata()[errors.MetaUserID])
}

func (s *ErrorsTestSuite) TestGRPCErrorInfoFlattensValidation() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("Clock")
	errors.ValidateMin("MaxToolRounds", -1, 0, vb)

	st, ok := status.FromError(errors.ToGRPCError(vb.Build()))
	s.Require().True(ok)
	s.Require().Len(st.Details(), 1)

	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Equal("is required", info.GetMetadata()["Clock"])
	s.Equal("must be at least 0", info.GetMetadata()["MaxToolRounds"])
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeCanceled, codes.Canceled},
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeDataLoss, codes.DataLoss},
		{errors.Code("BOGUS"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
