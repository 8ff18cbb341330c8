package jsonargs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
)

type JSONArgsTestSuite struct {
	suite.Suite
}

func TestJSONArgsSuite(t *testing.T) {
	suite.Run(t, new(JSONArgsTestSuite))
}

func (s *JSONArgsTestSuite) TestInt() {
	testCases := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"float", 3.6, 4, true},
		{"string", " 12 ", 12, true},
		{"json number", json.Number("7"), 7, true},
		{"garbage", "abc", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"huge", 1e30, 2147483647, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, ok := jsonargs.Int(tc.in)
			s.Equal(tc.ok, ok)
			s.Equal(tc.want, got)
		})
	}
}

func (s *JSONArgsTestSuite) TestBoolAndString() {
	b, ok := jsonargs.Bool("Yes")
	s.True(ok)
	s.True(b)

	_, ok = jsonargs.Bool("maybe")
	s.False(ok)

	str, ok := jsonargs.String(10.0)
	s.True(ok)
	s.Equal("10", str)
}

func (s *JSONArgsTestSuite) TestStringList() {
	got, ok := jsonargs.StringList([]any{"Dumbbells", 3.0, map[string]any{}})
	s.True(ok)
	s.Equal([]string{"Dumbbells", "3"}, got)

	got, ok = jsonargs.StringList("bench, rack ,")
	s.True(ok)
	s.Equal([]string{"bench", "rack"}, got)

	_, ok = jsonargs.StringList(42.0)
	s.False(ok)
}

func (s *JSONArgsTestSuite) TestArgs() {
	args := jsonargs.Args{"name": "  ", "skillName": "Plank", "stats": map[string]any{"strength": 50.0}, "gone": nil}

	s.False(args.Has("gone"))
	ref, ok := args.First("skillId", "name", "skillName")
	s.True(ok)
	s.Equal("Plank", ref)

	stats, ok := args.Object("stats")
	s.True(ok)
	v, ok := stats.Int("strength")
	s.True(ok)
	s.Equal(50, v)
}

func (s *JSONArgsTestSuite) TestIntMap() {
	args := jsonargs.Args{"stats": map[string]any{" Strength ": "12", "agility": 7.6, "notes": "lots"}}

	s.Equal(map[string]int{"strength": 12, "agility": 8}, args.IntMap("stats"))
	s.Nil(args.IntMap("missing"))
}
