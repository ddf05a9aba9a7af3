package search

import (
	"context"
	"strings"

	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
)

// VectorSearch retrieves beans whose embeddings are similar to the query
// vector, restricted by the filter. A minScore of zero or less falls back to
// the engine default. Results are ranked by similarity, with each story
// cluster collapsed to its closest member.
func (e *Engine) VectorSearch(ctx context.Context, vector []float32, f query.Filter, minScore float64, skip, limit int) ([]*core.Bean, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := e.vectorRows(ctx, vector, f, minScore)
	if err != nil {
		return nil, err
	}

	rows = Apply(rows,
		SortByScore(),
		GroupByCluster(),
		SortByScore(),
		Paginate(skip, limit),
	)
	return e.emit(rows), nil
}

// CountVectorSearch counts distinct story clusters passing the similarity
// floor, capped at limit.
func (e *Engine) CountVectorSearch(ctx context.Context, vector []float32, f query.Filter, minScore float64, limit int) (int, error) {
	rows, err := e.vectorRows(ctx, vector, f, minScore)
	if err != nil {
		return 0, err
	}
	rows = Apply(rows, SortByScore(), GroupByCluster())
	return capCount(len(rows), limit), nil
}

// SemanticSearch embeds the query text and runs VectorSearch with the
// resulting vector.
func (e *Engine) SemanticSearch(ctx context.Context, queryText string, f query.Filter, minScore float64, skip, limit int) ([]*core.Bean, error) {
	vector, err := e.embedQuery(ctx, queryText)
	if err != nil {
		return nil, err
	}
	return e.VectorSearch(ctx, vector, f, minScore, skip, limit)
}

// CountSemanticSearch embeds the query text and runs CountVectorSearch.
func (e *Engine) CountSemanticSearch(ctx context.Context, queryText string, f query.Filter, minScore float64, limit int) (int, error) {
	vector, err := e.embedQuery(ctx, queryText)
	if err != nil {
		return 0, err
	}
	return e.CountVectorSearch(ctx, vector, f, minScore, limit)
}

// TextSearch retrieves beans whose text matches the query tokens, ranked by
// term-frequency relevance. Rows below the relevance policy's minimum are
// dropped; story clusters are collapsed to their best match.
func (e *Engine) TextSearch(ctx context.Context, queryText string, f query.Filter, skip, limit int) ([]*core.Bean, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := e.textRows(ctx, queryText, f)
	if err != nil {
		return nil, err
	}

	rows = Apply(rows,
		SortByScore(),
		GroupByCluster(),
		SortByScore(),
		Paginate(skip, limit),
	)
	return e.emit(rows), nil
}

// CountTextSearch counts distinct story clusters matching the query text,
// capped at limit.
func (e *Engine) CountTextSearch(ctx context.Context, queryText string, f query.Filter, limit int) (int, error) {
	rows, err := e.textRows(ctx, queryText, f)
	if err != nil {
		return 0, err
	}
	rows = Apply(rows, SortByScore(), GroupByCluster())
	return capCount(len(rows), limit), nil
}

func (e *Engine) embedQuery(ctx context.Context, queryText string) ([]float32, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := e.embedder.EmbedQuery(ctx, queryText)
	if err != nil {
		e.logger.Error("query embedding failed", "err", err)
		return nil, err
	}
	return vector, nil
}

// vectorRows collects, scores and thresholds the candidate set.
func (e *Engine) vectorRows(ctx context.Context, vector []float32, f query.Filter, minScore float64) ([]Row, error) {
	if len(vector) == 0 {
		return nil, ErrEmptyQuery
	}
	if minScore <= 0 {
		minScore = e.minScore
	}
	if err := core.ValidateAccuracy(float32(minScore)); err != nil {
		return nil, err
	}

	rows, err := e.collect(ctx, f)
	if err != nil {
		return nil, err
	}

	// beans awaiting embedding backfill cannot match
	withEmbedding := rows[:0]
	for _, row := range rows {
		if len(row.Bean.Embedding) > 0 {
			withEmbedding = append(withEmbedding, row)
		}
	}
	rows = withEmbedding

	e.scoreByVector(vector, rows)
	return Apply(rows, Threshold(minScore)), nil
}

// textRows collects and scores the candidate set by term frequency.
func (e *Engine) textRows(ctx context.Context, queryText string, f query.Filter) ([]Row, error) {
	tokens := distinctTokens(queryText)
	if len(tokens) == 0 {
		return nil, ErrEmptyQuery
	}

	rows, err := e.collect(ctx, f)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Score = textScore(beanTokens(rows[i].Bean), tokens)
	}
	return Apply(rows, Threshold(e.relevance(tokens))), nil
}

// beanTokens gathers the searchable text of a bean.
func beanTokens(b *core.Bean) []string {
	var sb strings.Builder
	sb.WriteString(b.Title)
	sb.WriteByte('\n')
	sb.WriteString(b.Summary)
	sb.WriteByte('\n')
	sb.WriteString(b.Gist)
	sb.WriteByte('\n')
	sb.WriteString(b.Content)
	for _, tag := range b.Tags {
		sb.WriteByte('\n')
		sb.WriteString(tag)
	}
	return tokenizeAndFilter(sb.String())
}
