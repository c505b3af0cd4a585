package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/fundbarometer/internal/fund/application"
	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
	"github.com/wyfcoding/fundbarometer/pkg/metrics"
)

type memRepo struct {
	funds map[string]*domain.Fund
}

func (r *memRepo) Reset(ctx context.Context) error {
	r.funds = make(map[string]*domain.Fund)
	return nil
}

func (r *memRepo) Save(ctx context.Context, fund *domain.Fund) error {
	r.funds[fund.SchemeName] = fund
	return nil
}

func (r *memRepo) List(ctx context.Context) ([]domain.Fund, error) {
	names := make([]string, 0, len(r.funds))
	for name := range r.funds {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]domain.Fund, 0, len(names))
	for _, name := range names {
		out = append(out, *r.funds[name])
	}
	return out, nil
}

func (r *memRepo) CombinedRecords(ctx context.Context) ([]domain.CombinedRecord, error) {
	funds, _ := r.List(ctx)
	out := make([]domain.CombinedRecord, len(funds))
	for i, f := range funds {
		out[i] = domain.CombinedRecord{Fund: f}
	}
	return out, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &memRepo{funds: map[string]*domain.Fund{
		"Alpha Fund": {SchemeName: "Alpha Fund", CanonicalName: domain.Key("Alpha Fund")},
		"Beta Fund":  {SchemeName: "Beta Fund", CanonicalName: domain.Key("Beta Fund")},
	}}
	app := application.NewFundService(repo, nil, metrics.New("test"), nil, application.Options{
		Strategy:    domain.StrategyHeader,
		Mode:        domain.CoerceStrict,
		DedupPolicy: domain.DedupCanonicalFirstSeen,
	})

	r := gin.New()
	NewFundHandler(app, 20, 100).RegisterRoutes(r)
	return r
}

func TestUploadPage(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	testRouter(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `name="excel_file"`) {
		t.Error("upload page should contain the excel_file input")
	}
}

func TestUploadMissingFile(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/funds/upload", nil)
	testRouter(t).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearch(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/funds/search?q=alpha+fund", nil)
	testRouter(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Query   string                  `json:"query"`
		Count   int                     `json:"count"`
		Results []domain.CombinedRecord `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Count != 1 || len(body.Results) != 1 {
		t.Fatalf("count = %d, results = %d, want 1 and 1", body.Count, len(body.Results))
	}
	if body.Results[0].Fund.SchemeName != "Alpha Fund" {
		t.Errorf("result = %q, want Alpha Fund", body.Results[0].Fund.SchemeName)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/funds/search", nil)
	testRouter(t).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearchInvalidLimit(t *testing.T) {
	for _, limit := range []string{"abc", "0", "-5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/funds/search?q=alpha&limit="+limit, nil)
		testRouter(t).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", limit, w.Code)
		}
	}
}

func TestRefresh(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/funds/refresh", nil)
	testRouter(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Records int `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Records != 2 {
		t.Errorf("records = %d, want 2", body.Records)
	}
}
