package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonsurvey/domain/core"
)

func TestAnonymizeRows_RekeysByHash(t *testing.T) {
	table := numericTable([]string{"Q1"}, map[string][]Cell{
		"s001": {Some(4)},
		"s002": {Some(2)},
	}, []string{"s001", "s002"})

	anon, err := AnonymizeRows(table, false)
	require.NoError(t, err)

	hash1, _ := core.AnonymizeID("s001", false)
	hash2, _ := core.AnonymizeID("s002", false)
	assert.Equal(t, []string{hash1.String(), hash2.String()}, anon.Order)
	assert.Equal(t, []Cell{Some(4)}, anon.Cells[hash1.String()])

	// No raw identifier survives as a key
	_, rawLeft := anon.Cells["s001"]
	assert.False(t, rawLeft)
}

func TestAnonymizeRows_PrefixCollapseKeepsFirst(t *testing.T) {
	table := numericTable([]string{"Q1"}, map[string][]Cell{
		"s123": {Some(5)},
		"123":  {Some(1)},
	}, []string{"s123", "123"})

	anon, err := AnonymizeRows(table, true)
	require.NoError(t, err)

	require.Equal(t, 1, anon.RowCount())
	hash, _ := core.AnonymizeID("123", true)
	assert.Equal(t, []Cell{Some(5)}, anon.Cells[hash.String()])
}

func TestAnonymizeRows_EmptyIdentifierRejected(t *testing.T) {
	table := numericTable([]string{"Q1"}, map[string][]Cell{
		"  ": {Some(5)},
	}, []string{"  "})

	_, err := AnonymizeRows(table, false)
	assert.ErrorIs(t, err, core.ErrEmptyIdentifier)
}
