package search

import (
	"testing"
	"time"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
	"github.com/stretchr/testify/assert"
)

func rowsFor(beans ...*core.Bean) []Row {
	rows := make([]Row, len(beans))
	for i, b := range beans {
		rows[i] = Row{Bean: b}
	}
	return rows
}

func TestThresholdStage(t *testing.T) {
	rows := []Row{
		{Bean: &core.Bean{URL: "a"}, Score: 0.9},
		{Bean: &core.Bean{URL: "b"}, Score: 0.7},
		{Bean: &core.Bean{URL: "c"}, Score: 0.69},
	}

	kept := Apply(rows, Threshold(0.7))
	assert.Len(t, kept, 2, "boundary is inclusive")
}

func TestGroupByClusterStage(t *testing.T) {
	rows := rowsFor(
		&core.Bean{URL: "a", ClusterID: "x"},
		&core.Bean{URL: "b", ClusterID: "x"},
		&core.Bean{URL: "c", ClusterID: "y"},
		&core.Bean{URL: "d"},
		&core.Bean{URL: "e"},
	)

	kept := Apply(rows, GroupByCluster())
	assert.Len(t, kept, 4)
	assert.Equal(t, "a", kept[0].Bean.URL, "first per cluster in current order wins")
	assert.Equal(t, "d", kept[2].Bean.URL, "clusterless rows all pass")
}

func TestPaginateStage(t *testing.T) {
	rows := rowsFor(
		&core.Bean{URL: "a"}, &core.Bean{URL: "b"},
		&core.Bean{URL: "c"}, &core.Bean{URL: "d"},
	)

	assert.Len(t, Apply(rows, Paginate(0, 2)), 2)
	assert.Equal(t, "c", Apply(rowsFor(
		&core.Bean{URL: "a"}, &core.Bean{URL: "b"},
		&core.Bean{URL: "c"}, &core.Bean{URL: "d"},
	), Paginate(2, 2))[0].Bean.URL)
	assert.Empty(t, Apply(rowsFor(&core.Bean{URL: "a"}), Paginate(5, 2)), "skip past the end")
}

func TestProjectStage(t *testing.T) {
	stored := &core.Bean{
		URL:       "a",
		Title:     "Title",
		Content:   "full body",
		Embedding: []float32{1, 2, 3},
	}

	projected := Apply(rowsFor(stored), Project(DigestView))
	assert.Equal(t, "Title", projected[0].Bean.Title)
	assert.Empty(t, projected[0].Bean.Content)
	assert.Empty(t, projected[0].Bean.Embedding)
	assert.Equal(t, "full body", stored.Content, "stored record is copied, not mutated")

	passthrough := Apply(rowsFor(stored), Project(nil))
	assert.Same(t, stored, passthrough[0].Bean)
}

func TestSortByScoreDeterministic(t *testing.T) {
	rows := []Row{
		{Bean: &core.Bean{URL: "b"}, Score: 0.8},
		{Bean: &core.Bean{URL: "a"}, Score: 0.8},
		{Bean: &core.Bean{URL: "c"}, Score: 0.9},
	}

	sorted := Apply(rows, SortByScore())
	assert.Equal(t, "c", sorted[0].Bean.URL)
	assert.Equal(t, "a", sorted[1].Bean.URL, "equal scores fall back to URL order")
	assert.Equal(t, "b", sorted[2].Bean.URL)
}

func TestSortByStage(t *testing.T) {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := rowsFor(
		&core.Bean{URL: "old", Created: base},
		&core.Bean{URL: "new", Created: base.Add(time.Hour)},
	)

	sorted := Apply(rows, SortBy(query.Newest))
	assert.Equal(t, "new", sorted[0].Bean.URL)
}

func TestTokenizeAndFilter(t *testing.T) {
	tokens := tokenizeAndFilter("The Quick, brown FOX (and) a dog!")
	assert.Equal(t, []string{"quick", "brown", "fox", "dog"}, tokens)
}

func TestTextScore(t *testing.T) {
	doc := tokenizeAndFilter("solar wind solar power")
	assert.Equal(t, 3.0, textScore(doc, []string{"solar", "wind"}))
	assert.Equal(t, 0.0, textScore(doc, []string{"nuclear"}))
	assert.Equal(t, 0.0, textScore(doc, nil))
}
