package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
	snapshotmock "github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot/mock"
	"github.com/KirkDiggler/rpg-fitness/internal/testutils"
)

type DoctorTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	mockRepo *snapshotmock.MockRepository
}

func TestDoctorSuite(t *testing.T) {
	suite.Run(t, new(DoctorTestSuite))
}

func (s *DoctorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = snapshotmock.NewMockRepository(s.ctrl)
}

func (s *DoctorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DoctorTestSuite) expectScan() {
	good := progression.NewSnapshot("user-good", testutils.TestNow)
	s.mockRepo.EXPECT().List(s.ctx, snapshot.ListInput{}).
		Return(&snapshot.ListOutput{UserIDs: []string{"user-bad", "user-good"}}, nil)
	s.mockRepo.EXPECT().Get(s.ctx, snapshot.GetInput{UserID: "user-bad"}).
		Return(nil, errors.DataLoss("failed to unmarshal snapshot"))
	s.mockRepo.EXPECT().Get(s.ctx, snapshot.GetInput{UserID: "user-good"}).
		Return(&snapshot.GetOutput{Snapshot: good}, nil)
}

func (s *DoctorTestSuite) TestReportsWithoutDeleting() {
	s.expectScan()

	var buf bytes.Buffer
	report, err := diagnose(s.ctx, s.mockRepo, &buf, false)
	s.Require().NoError(err)

	s.Equal(2, report.Checked)
	s.Equal([]string{"user-bad"}, report.Corrupt)
	s.Empty(report.Deleted)
	s.Contains(buf.String(), "corrupt: user-bad")
}

func (s *DoctorTestSuite) TestDeletesCorruptSnapshots() {
	s.expectScan()
	s.mockRepo.EXPECT().Delete(s.ctx, snapshot.DeleteInput{UserID: "user-bad"}).
		Return(&snapshot.DeleteOutput{Deleted: true}, nil)

	var buf bytes.Buffer
	report, err := diagnose(s.ctx, s.mockRepo, &buf, true)
	s.Require().NoError(err)
	s.Equal([]string{"user-bad"}, report.Deleted)
	s.Contains(buf.String(), "deleted user-bad")
}

func (s *DoctorTestSuite) TestStopsOnStorageFailure() {
	s.mockRepo.EXPECT().List(s.ctx, snapshot.ListInput{}).
		Return(&snapshot.ListOutput{UserIDs: []string{"user-1"}}, nil)
	s.mockRepo.EXPECT().Get(s.ctx, snapshot.GetInput{UserID: "user-1"}).
		Return(nil, errors.Unavailable("redis down"))

	_, err := diagnose(s.ctx, s.mockRepo, &bytes.Buffer{}, true)
	s.True(errors.IsUnavailable(err))
}
