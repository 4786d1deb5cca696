package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		percentage int
		expected   string
	}{
		{100, LetterGradeA},
		{95, LetterGradeA},
		{90, LetterGradeA},
		{89, LetterGradeB},
		{84, LetterGradeB},
		{80, LetterGradeB},
		{79, LetterGradeC},
		{70, LetterGradeC},
		{69, LetterGradeD},
		{60, LetterGradeD},
		{59, LetterGradeF},
		{0, LetterGradeF},
		{-5, LetterGradeF},
	}

	for _, tc := range cases {
		require.Equal(t, tc.expected, LetterGrade(tc.percentage), "percentage %d", tc.percentage)
	}
}

func TestLetterGradeMonotone(t *testing.T) {
	rank := map[string]int{
		LetterGradeA: 5,
		LetterGradeB: 4,
		LetterGradeC: 3,
		LetterGradeD: 2,
		LetterGradeF: 1,
	}

	previous := rank[LetterGrade(120)]
	for p := 119; p >= -10; p-- {
		current, known := rank[LetterGrade(p)]
		require.True(t, known, "unexpected letter at %d", p)
		require.LessOrEqual(t, current, previous, "grade increased as percentage dropped at %d", p)
		previous = current
	}
}

func TestPercentageGuardsDivideByZero(t *testing.T) {
	require.Equal(t, 0, Percentage(10, 0))
	require.Equal(t, 0, Percentage(10, -1))
	require.Equal(t, 95, Percentage(95, 100))
	require.Equal(t, 84, Percentage(42, 50))
	require.Equal(t, 67, Percentage(2, 3))
}

func TestGradeApplyRecomputesDerivedFields(t *testing.T) {
	grade := Grade{MaxScore: 50}
	grade.Apply(42)

	require.Equal(t, 42.0, grade.Score)
	require.Equal(t, 84, grade.Percentage)
	require.Equal(t, LetterGradeB, grade.LetterGrade)
}
