package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"go2/internal/models"
)

type fakeSource struct {
	index models.KeywordIndex
	err   error
}

func (f fakeSource) GetKeywordIndex(context.Context) (models.KeywordIndex, error) {
	return f.index, f.err
}

func TestKeywordCollector(t *testing.T) {
	wiki := models.NewKeywordList("wiki")
	wiki.Clicks = 7
	wiki.Add(models.Link{ID: uuid.New(), URL: "https://en.wikipedia.org"})
	wiki.Add(models.Link{ID: uuid.New(), URL: "https://de.wikipedia.org"})

	c := NewKeywordCollector(fakeSource{index: models.KeywordIndex{
		"wiki": wiki,
		"r":    models.NewKeywordList("r"),
	}})

	if n := testutil.CollectAndCount(c); n != 4 {
		t.Errorf("collected %d metrics, want 4", n)
	}

	expected := `
# HELP go2_keyword_clicks_total Total redirects through each keyword
# TYPE go2_keyword_clicks_total counter
go2_keyword_clicks_total{keyword="r"} 0
go2_keyword_clicks_total{keyword="wiki"} 7
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "go2_keyword_clicks_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestKeywordCollector_SourceError(t *testing.T) {
	c := NewKeywordCollector(fakeSource{err: errors.New("db down")})
	if n := testutil.CollectAndCount(c); n != 0 {
		t.Errorf("collected %d metrics on error, want 0", n)
	}
}

func TestRecordKeywordLoad(t *testing.T) {
	before := testutil.ToFloat64(keywordLoads.WithLabelValues(OutcomeFailure))
	RecordKeywordLoad(false)
	RecordKeywordLoad(true)
	after := testutil.ToFloat64(keywordLoads.WithLabelValues(OutcomeFailure))
	if after-before != 1 {
		t.Errorf("failure count increased by %v, want 1", after-before)
	}
}
