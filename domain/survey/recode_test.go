package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecode_Categories(t *testing.T) {
	scoring := fivePointScoring(t)

	table := NewRawTable([]string{"Q1", "Q2"})
	table.AddRow("s1", []string{"SA", "SD"})
	table.AddRow("s2", []string{"A", "D"})
	table.AddRow("s3", []string{"N", "N"})

	numeric, diags := Recode(table, scoring)

	assert.Empty(t, diags)
	assert.Equal(t, table.Questions, numeric.Questions)
	assert.Equal(t, table.Order, numeric.Order)
	assert.Equal(t, []Cell{Some(5), Some(1)}, numeric.Cells["s1"])
	assert.Equal(t, []Cell{Some(4), Some(2)}, numeric.Cells["s2"])
	assert.Equal(t, []Cell{Some(3), Some(3)}, numeric.Cells["s3"])
}

func TestRecode_UnmappedBecomesMissingWithDiagnostic(t *testing.T) {
	scoring := fivePointScoring(t)

	table := NewRawTable([]string{"Q1"})
	table.AddRow("s1", []string{"Maybe"})
	table.AddRow("s2", []string{"SA"})

	numeric, diags := Recode(table, scoring)

	require.Len(t, diags, 1)
	assert.Equal(t, RecodeDiagnostic{Row: "s1", Question: "Q1", Value: "Maybe"}, diags[0])
	assert.False(t, numeric.Cells["s1"][0].Valid)
	assert.True(t, numeric.Cells["s2"][0].Valid)
}

func TestRecode_EmptyCellStaysMissingWithoutDiagnostic(t *testing.T) {
	scoring := fivePointScoring(t)

	table := NewRawTable([]string{"Q1", "Q2"})
	table.AddRow("s1", []string{"", "A"})
	// Short row: trailing cells missing
	table.AddRow("s2", []string{"D"})

	numeric, diags := Recode(table, scoring)

	assert.Empty(t, diags)
	assert.False(t, numeric.Cells["s1"][0].Valid)
	assert.True(t, numeric.Cells["s1"][1].Valid)
	assert.True(t, numeric.Cells["s2"][0].Valid)
	assert.False(t, numeric.Cells["s2"][1].Valid)
}

func TestRecode_FullyValidTableDropsNothing(t *testing.T) {
	scoring := fivePointScoring(t)

	table := NewRawTable([]string{"Q1", "Q2", "Q3"})
	for _, key := range []string{"a", "b", "c", "d"} {
		table.AddRow(key, []string{"SA", "A", "N"})
	}

	numeric, diags := Recode(table, scoring)

	assert.Empty(t, diags)
	assert.Equal(t, table.RowCount(), numeric.RowCount())
	assert.Len(t, numeric.Questions, 3)
	for _, key := range numeric.Order {
		for _, cell := range numeric.Cells[key] {
			assert.True(t, cell.Valid)
		}
	}
}
