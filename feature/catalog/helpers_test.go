package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"
	"catalog-sync/feature/catalog/woocommerce"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// shop is a WooCommerce fake whose catalog can change between runs.
type shop struct {
	mu       sync.Mutex
	records  []map[string]any
	fail     map[int]int    // page -> status
	bodies   map[int]string // page -> literal 200 body
	hold     chan struct{}
	requests atomic.Int32
}

func (s *shop) set(records []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

func (s *shop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	if s.hold != nil {
		<-s.hold
	}

	s.mu.Lock()
	records := s.records
	fail := s.fail
	bodies := s.bodies
	s.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if status, ok := fail[page]; ok {
		w.WriteHeader(status)
		return
	}
	if body, ok := bodies[page]; ok {
		_, _ = w.Write([]byte(body))
		return
	}

	w.Header().Set("X-WP-Total", strconv.Itoa(len(records)))
	start := (page - 1) * perPage
	body := []map[string]any{}
	if start < len(records) {
		body = records[start:min(start+perPage, len(records))]
	}
	_ = json.NewEncoder(w).Encode(body)
}

func remoteProduct(id int, name string, cats ...models.Category) map[string]any {
	if len(cats) == 0 {
		cats = []models.Category{{ID: 1, Name: "Books", Slug: "books"}}
	}
	return map[string]any{
		"id":            id,
		"name":          name,
		"permalink":     "https://shop.example/p/" + strconv.Itoa(id),
		"price":         "10.00",
		"regular_price": "10.00",
		"status":        "publish",
		"type":          "simple",
		"downloadable":  false,
		"categories":    cats,
	}
}

func remoteRange(from, to int) []map[string]any {
	out := make([]map[string]any, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, remoteProduct(id, "Product "+strconv.Itoa(id)))
	}
	return out
}

func mirrorRow(id int64, name string) models.MirrorProduct {
	return models.ToMirrorRecord(models.RemoteProduct{
		ID:           id,
		Name:         name,
		Permalink:    "https://shop.example/p/" + strconv.FormatInt(id, 10),
		Price:        "10.00",
		Categories:   []models.Category{{ID: 1, Name: "Books", Slug: "books"}},
		Downloadable: false,
	})
}

type fixture struct {
	shop    *shop
	store   *store.Store
	service *Service
}

func newFixture(t *testing.T, records []map[string]any) *fixture {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.Prepare(context.Background()))

	sh := &shop{records: records}
	srv := httptest.NewServer(sh)
	t.Cleanup(srv.Close)

	client := woocommerce.NewClient(woocommerce.Config{
		BaseURL:        srv.URL,
		APIPath:        "/wp-json/wc/v3",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		PageSize:       100,
		Status:         "publish",
		Timeout:        5 * time.Second,
	}, zap.NewNop())

	svc := NewService(client, st, nil, SyncConfig{InsertBatchSize: 50}, zap.NewNop())
	return &fixture{shop: sh, store: st, service: svc}
}

func (f *fixture) seed(t *testing.T, rows ...models.MirrorProduct) {
	t.Helper()
	require.NoError(t, f.store.InsertBatch(context.Background(), rows))
}

func (f *fixture) ids(t *testing.T) []int64 {
	t.Helper()
	rows, err := f.store.All(context.Background())
	require.NoError(t, err)
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ShopID
	}
	return ids
}

func idRange(from, to int64) []int64 {
	out := make([]int64, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, id)
	}
	return out
}
