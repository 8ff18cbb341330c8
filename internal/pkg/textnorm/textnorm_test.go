package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
)

type TextNormTestSuite struct {
	suite.Suite
}

func TestTextNormSuite(t *testing.T) {
	suite.Run(t, new(TextNormTestSuite))
}

func (s *TextNormTestSuite) TestKey() {
	testCases := []struct {
		in   string
		want string
	}{
		{"Standard Push-up", "standard push up"},
		{"  Élévation   Mollets!! ", "elevation mollets"},
		{"Dominadas (Pull-Ups)", "dominadas pull ups"},
		{"---", ""},
	}

	for _, tc := range testCases {
		s.Run(tc.in, func() {
			s.Equal(tc.want, textnorm.Key(tc.in))
		})
	}
}

func (s *TextNormTestSuite) TestFuzzyMatch() {
	s.True(textnorm.FuzzyMatch("push-up", "Standard Push-up"))
	s.True(textnorm.FuzzyMatch("STANDARD PUSH UP", "standard push-up"))
	s.True(textnorm.FuzzyMatch("Sentadilla búlgara", "sentadilla bulgara con mancuernas"))
	s.False(textnorm.FuzzyMatch("Pull-up", "Plank"))
	s.False(textnorm.FuzzyMatch("", "Plank"))
}

func (s *TextNormTestSuite) TestSlug() {
	s.Equal("barra-fija-pull-up", textnorm.Slug("Barra Fija (Pull-up)"))
	s.Equal("cable-machine", textnorm.Slug("  Cable   Machine "))
}

func (s *TextNormTestSuite) TestSanitize() {
	s.Equal("Do 3 sets", textnorm.Sanitize("<script>alert(1)</script>Do 3 sets", 0))
	s.Equal("click alert(1)", textnorm.Sanitize("click javascript:alert(1)", 0))
	s.Equal("abc", textnorm.Sanitize("abcdef", 3))
	s.Equal("keep\nlines", textnorm.Sanitize("keep\nlines\x00", 0))
	s.Equal("one line", textnorm.SanitizeLine("one\n  line", 0))
}

func (s *TextNormTestSuite) TestCleanList() {
	got := textnorm.CleanList([]string{" Dumbbells", "dumbbells", "", "Kettlebell", "<b>Bench</b>"}, 40)
	s.Equal([]string{"Dumbbells", "Kettlebell", "Bench"}, got)
}
