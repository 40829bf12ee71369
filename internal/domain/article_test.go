package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitActionItems(t *testing.T) {
	t.Parallel()

	items := SplitActionItems("A.\nB.\nC.")
	require.Len(t, items, 3)
	for i, want := range []string{"A.", "B.", "C."} {
		assert.Equal(t, i, items[i].Index)
		assert.Equal(t, want, items[i].Text)
	}
}

func TestSplitActionItemsKeepsBlankLines(t *testing.T) {
	t.Parallel()

	items := SplitActionItems("A.\n\nB.")
	require.Len(t, items, 3)
	assert.Equal(t, ActionItem{Index: 1, Text: ""}, items[1])
	assert.Equal(t, "B.", items[2].Text)
}

func TestSplitActionItemsEmptyInput(t *testing.T) {
	t.Parallel()

	items := SplitActionItems("")
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].Text)
}

func TestZipArticles(t *testing.T) {
	t.Parallel()

	records := ZipArticles([]string{"t1", "t2"}, []string{"d1", "d2"})
	assert.Equal(t, []ArticleRecord{{"t1", "d1"}, {"t2", "d2"}}, records)
	assert.Empty(t, ZipArticles(nil, nil))
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	base := NewCollaboratorError("search", KindRateLimit, errors.New("slow down"))
	wrapped := fmt.Errorf("stage: %w", base)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindRateLimit, kind)
	assert.Contains(t, wrapped.Error(), "rate_limit")

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestRunReportFulfilledCount(t *testing.T) {
	t.Parallel()

	report := RunReport{Fulfillments: []Fulfillment{
		{Index: 0, Artifact: "action_0.txt"},
		{Index: 1, Err: errors.New("boom")},
		{Index: 2, Artifact: "action_2.txt"},
	}}
	assert.Equal(t, 2, report.FulfilledCount())
}
