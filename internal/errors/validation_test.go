package errors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
	vb *errors.ValidationBuilder
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) SetupTest() {
	s.vb = errors.NewValidationBuilder()
}

func (s *ValidationTestSuite) fields() map[string][]string {
	err := s.vb.Build()
	s.Require().Error(err)
	s.Require().True(errors.IsInvalidArgument(err))
	fields, ok := errors.GetMeta(err)[errors.MetaValidation].(map[string][]string)
	s.Require().True(ok)
	return fields
}

func (s *ValidationTestSuite) TestBuildWithoutProblems() {
	errors.ValidateRequired("FITNESS_SQLITE_PATH", "fitness.db", s.vb)
	errors.ValidateRange("FITNESS_GRPC_PORT", 50051, 1, 65535, s.vb)

	s.NoError(s.vb.Build())
}

func (s *ValidationTestSuite) TestBuildListsFieldsInOrder() {
	s.vb.RequiredField("Repository").
		InvalidField("ResetSchedule", "expected five fields").
		RequiredField("Clock")

	err := s.vb.Build()
	s.Require().Error(err)
	s.Equal("validation failed: Clock: is required; Repository: is required; ResetSchedule: is invalid: expected five fields",
		errors.GetMessage(err))
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "localhost:6379", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("FITNESS_REDIS_ADDR", tc.value, vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	errors.ValidateRange("FITNESS_MAX_TOOL_ROUNDS", 0, 1, 16, s.vb)
	errors.ValidateRange("FITNESS_GRPC_PORT", 8080, 1, 65535, s.vb)

	fields := s.fields()
	s.Equal([]string{"must be between 1 and 16"}, fields["FITNESS_MAX_TOOL_ROUNDS"])
	s.NotContains(fields, "FITNESS_GRPC_PORT")
}

func (s *ValidationTestSuite) TestValidateMin() {
	errors.ValidateMin("MaxToolRounds", -1, 0, s.vb)
	errors.ValidateMin("Sets", 1, 1, s.vb)

	fields := s.fields()
	s.Equal([]string{"must be at least 0"}, fields["MaxToolRounds"])
	s.NotContains(fields, "Sets")
}

func (s *ValidationTestSuite) TestValidatePositiveDuration() {
	errors.ValidatePositiveDuration("FITNESS_GATEWAY_TIMEOUT", 0, s.vb)
	errors.ValidatePositiveDuration("Interval", -time.Second, s.vb)
	errors.ValidatePositiveDuration("Ping", time.Second, s.vb)

	fields := s.fields()
	s.Equal([]string{"must be positive"}, fields["FITNESS_GATEWAY_TIMEOUT"])
	s.Contains(fields, "Interval")
	s.NotContains(fields, "Ping")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	storages := []string{"sqlite", "redis", "memory"}

	errors.ValidateEnum("FITNESS_STORAGE", "postgres", storages, s.vb)
	errors.ValidateEnum("FALLBACK_STORAGE", "memory", storages, s.vb)

	fields := s.fields()
	s.Equal([]string{"must be one of: sqlite, redis, memory"}, fields["FITNESS_STORAGE"])
	s.NotContains(fields, "FALLBACK_STORAGE")
}

func (s *ValidationTestSuite) TestMessagesAccumulatePerField() {
	errors.ValidateRequired("FITNESS_TIMEZONE", "", s.vb)
	s.vb.InvalidField("FITNESS_TIMEZONE", "unknown time zone")

	fields := s.fields()
	s.Equal([]string{"is required", "is invalid: unknown time zone"}, fields["FITNESS_TIMEZONE"])
}
