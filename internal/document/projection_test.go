package document

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageOf(texts ...string) Page {
	runs := make([]Run, len(texts))
	for i, t := range texts {
		runs[i] = Run{ID: string(rune('a' + i)), Text: t}
	}
	return Page{Runs: runs}
}

func TestProjectPositionMapInvariant(t *testing.T) {
	pages := []Page{
		pageOf(),
		pageOf(""),
		pageOf("ab", "  cd"),
		pageOf("zażółć", "", " gęślą", "jaźń"),
		pageOf("日本", "語のテキスト", "x"),
	}

	for _, page := range pages {
		proj := Project(page)

		total := 0
		for _, run := range page.Runs {
			total += utf8.RuneCountInString(run.Text)
		}
		require.Equal(t, total, len(proj.Positions))
		require.Equal(t, total, len(proj.Runes))
		require.Equal(t, total, utf8.RuneCountInString(proj.Text))

		for i := 1; i < len(proj.Positions); i++ {
			assert.LessOrEqual(t, proj.Positions[i-1].Run, proj.Positions[i].Run)
		}
		for i, pos := range proj.Positions {
			runRunes := []rune(page.Runs[pos.Run].Text)
			assert.Equal(t, runRunes[pos.Offset], proj.Runes[i])
		}
	}
}

func TestProjectConcatenatesRunsInOrder(t *testing.T) {
	proj := Project(pageOf("ab", "  cd"))
	assert.Equal(t, "ab  cd", proj.Text)
	assert.Equal(t, []Position{
		{0, 0}, {0, 1}, {1, 0}, {1, 1}, {1, 2}, {1, 3},
	}, proj.Positions)
}

func TestSliceMergesSameRunOffsets(t *testing.T) {
	proj := Project(pageOf("ab", "  cd", "ef"))

	got := proj.Slice(1, 7)
	assert.Equal(t, Range{
		{Run: 0, Start: 1, End: 2},
		{Run: 1, Start: 0, End: 4},
		{Run: 2, Start: 0, End: 1},
	}, got)
}

func TestSliceSkipsEmptyRuns(t *testing.T) {
	proj := Project(pageOf("ab", "", "cd"))
	assert.Equal(t, Range{
		{Run: 0, Start: 0, End: 2},
		{Run: 2, Start: 0, End: 2},
	}, proj.Slice(0, 4))
}

func TestSliceClampsBounds(t *testing.T) {
	proj := Project(pageOf("abc"))
	assert.Nil(t, proj.Slice(2, 2))
	assert.Nil(t, proj.Slice(5, 9))
	assert.Equal(t, Range{{Run: 0, Start: 0, End: 3}}, proj.Slice(-4, 99))
}

func TestRangeLess(t *testing.T) {
	a := Range{{Run: 0, Start: 4, End: 5}}
	b := Range{{Run: 1, Start: 0, End: 1}}
	c := Range{{Run: 1, Start: 2, End: 3}}
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(a))
	assert.True(t, a.Less(nil))
	assert.False(t, Range(nil).Less(a))
}

func TestDocumentHelpers(t *testing.T) {
	doc := Document{Pages: []Page{pageOf("", ""), pageOf("x")}}
	assert.Equal(t, 3, doc.RunCount())
	assert.False(t, doc.Empty())
	assert.True(t, Document{Pages: []Page{pageOf("")}}.Empty())
	assert.Equal(t, "ab  cd", pageOf("ab", "  cd").Text())
}
