package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alignedFixture(t *testing.T) *AlignedPair {
	t.Helper()
	cells := []Cell{Some(3), Some(4)}
	pre := numericTable([]string{"I trust others", "I feel isolated"}, map[string][]Cell{
		"bbb": cells, "aaa": cells, "ccc": cells,
	}, []string{"bbb", "aaa", "ccc"})
	post := numericTable([]string{"I trust others", "I feel isolated"}, map[string][]Cell{
		"aaa": cells, "ccc": cells, "bbb": cells,
	}, []string{"aaa", "ccc", "bbb"})

	aligned, err := Align(pre, post)
	require.NoError(t, err)
	return aligned
}

func TestBuildLegend_Questions(t *testing.T) {
	legend := BuildLegend(alignedFixture(t), false)

	assert.Equal(t, map[string]string{
		"Q01": "I feel isolated",
		"Q02": "I trust others",
	}, legend.Questions)
	assert.Nil(t, legend.Students)
}

func TestBuildLegend_PseudonymsFollowSortedOrder(t *testing.T) {
	legend := BuildLegend(alignedFixture(t), true)

	assert.Equal(t, map[string]string{
		"aaa": "student_01",
		"bbb": "student_02",
		"ccc": "student_03",
	}, legend.Students)
}

func TestBuildLegend_Deterministic(t *testing.T) {
	first := BuildLegend(alignedFixture(t), true)
	second := BuildLegend(alignedFixture(t), true)
	assert.Equal(t, first, second)
}

func TestShorthands(t *testing.T) {
	assert.Equal(t, "Q01", QuestionShorthand(0))
	assert.Equal(t, "Q12", QuestionShorthand(11))
	assert.Equal(t, "student_01", StudentPseudonym(0))
	assert.Equal(t, "student_07", StudentPseudonym(6))
}
