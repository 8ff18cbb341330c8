package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
)

type ClockTestSuite struct {
	suite.Suite
}

func TestClockSuite(t *testing.T) {
	suite.Run(t, new(ClockTestSuite))
}

func (s *ClockTestSuite) TestFixed() {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := clock.NewFixed(start)

	s.Equal(start, c.Now())

	c.Advance(2 * time.Hour)
	s.Equal(start.Add(2*time.Hour), c.Now())

	c.AdvanceDays(1)
	s.Equal(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), c.Now())
}

func (s *ClockTestSuite) TestStartOfDay() {
	loc := time.FixedZone("UTC-5", -5*60*60)
	t := time.Date(2026, 3, 2, 3, 30, 0, 0, time.UTC)

	s.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc), clock.StartOfDay(t, loc))
	s.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), clock.StartOfDay(t, nil))
}
