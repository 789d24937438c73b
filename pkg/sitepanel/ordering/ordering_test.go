package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Label string
	URL   string
}

func emptyRow(r row) bool {
	return r.Label == "" && r.URL == ""
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestReconcileSingleDropsPlaceholders(t *testing.T) {
	items := []row{
		{Label: "A", URL: "http://a"},
		{},
		{Label: "B", URL: "http://b"},
	}

	got := ReconcileSingle(items, emptyRow)

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Value.Label)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, "B", got[1].Value.Label)
	assert.Equal(t, 1, got[1].Index)
}

func TestReconcileSingleHalfEmptyRowSurvives(t *testing.T) {
	// A row is a placeholder only when both fields are empty.
	items := []row{
		{Label: "only label"},
		{URL: "http://only-url"},
	}

	got := ReconcileSingle(items, emptyRow)

	require.Len(t, got, 2)
}

func TestReconcileSingleAllPlaceholders(t *testing.T) {
	got := ReconcileSingle([]row{{}, {}, {}}, emptyRow)
	assert.Empty(t, got)
}

func TestReconcileSingleDeterministic(t *testing.T) {
	items := []row{
		{Label: "A", URL: "http://a"},
		{},
		{Label: "B", URL: "http://b"},
	}

	first := ReconcileSingle(items, emptyRow)
	second := ReconcileSingle(items, emptyRow)

	assert.Equal(t, first, second)
}

func TestReconcileGroupsAssignsContiguousIndexes(t *testing.T) {
	groups := []Group[row]{
		{
			Name: strPtr("G1"),
			Items: []GroupEntry[row]{
				{Value: row{Label: "X", URL: "http://x"}},
				{Value: row{}},
				{Value: row{Label: "Y", URL: "http://y"}},
			},
		},
		{
			Name:  strPtr("G2"),
			Items: []GroupEntry[row]{{Value: row{Label: "Z", URL: "http://z"}}},
		},
	}

	got := ReconcileGroups(groups, emptyRow)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 1, got[1].Index)

	// Placeholder dropped, survivors contiguous from 0.
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, 0, got[0].Items[0].GroupIndex)
	assert.Equal(t, 1, got[0].Items[1].GroupIndex)
	assert.Equal(t, "Y", got[0].Items[1].Value.Label)
}

func TestReconcileGroupsDefaultNames(t *testing.T) {
	groups := []Group[row]{
		{Items: []GroupEntry[row]{{Value: row{Label: "X", URL: "http://x"}}}},
		{Name: strPtr("Named")},
		{},
	}

	got := ReconcileGroups(groups, emptyRow)

	require.Len(t, got, 3)
	assert.Equal(t, "Group 1", got[0].Name)
	assert.Equal(t, "Named", got[1].Name)
	assert.Equal(t, "Group 3", got[2].Name)
}

func TestReconcileGroupsExplicitGroupIndexWins(t *testing.T) {
	groups := []Group[row]{
		{
			Name: strPtr("G"),
			Items: []GroupEntry[row]{
				{Value: row{Label: "A", URL: "http://a"}, GroupIndex: intPtr(5)},
				{Value: row{Label: "B", URL: "http://b"}},
			},
		},
	}

	got := ReconcileGroups(groups, emptyRow)

	require.Len(t, got[0].Items, 2)
	assert.Equal(t, 5, got[0].Items[0].GroupIndex)
	// Fallback Index is still the running position either way.
	assert.Equal(t, 0, got[0].Items[0].Index)
	assert.Equal(t, 1, got[0].Items[1].GroupIndex)
}

func TestReconcileGroupsEmptyGroupKept(t *testing.T) {
	// A group whose rows are all placeholders still persists as an empty
	// bucket; the user created it on purpose.
	groups := []Group[row]{
		{Name: strPtr("Empty"), Items: []GroupEntry[row]{{Value: row{}}}},
	}

	got := ReconcileGroups(groups, emptyRow)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Items)
}

func TestGroupName(t *testing.T) {
	assert.Equal(t, "Group 4", GroupName(nil, 4))
	assert.Equal(t, "Links", GroupName(strPtr("Links"), 4))
	// An explicit empty name is kept; only a missing name gets the default.
	assert.Equal(t, "", GroupName(strPtr(""), 4))
}
