package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func product(id int) map[string]any {
	return map[string]any{
		"id":            id,
		"name":          "Product " + strconv.Itoa(id),
		"permalink":     "https://shop.example/p/" + strconv.Itoa(id),
		"price":         "9.99",
		"regular_price": "9.99",
		"downloadable":  false,
		"status":        "publish",
		"type":          "simple",
		"categories":    []map[string]any{{"id": 1, "name": "Books", "slug": "books"}},
	}
}

func catalog(from, to int) []map[string]any {
	out := make([]map[string]any, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, product(id))
	}
	return out
}

// fakeShop serves records page by page the way WooCommerce does.
type fakeShop struct {
	records  []map[string]any
	pastEnd  int // status for pages past the end, 0 serves an empty array
	override map[int]func(w http.ResponseWriter)
	requests atomic.Int32
	lastAuth atomic.Value
	lastURL  atomic.Value
}

func (f *fakeShop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	f.lastAuth.Store(r.Header.Get("Authorization"))
	f.lastURL.Store(r.URL.String())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if fn, ok := f.override[page]; ok {
		fn(w)
		return
	}

	start := (page - 1) * perPage
	w.Header().Set("X-WP-Total", strconv.Itoa(len(f.records)))
	w.Header().Set("X-WP-TotalPages", strconv.Itoa((len(f.records)+perPage-1)/perPage))

	if start >= len(f.records) && page > 1 && f.pastEnd != 0 {
		w.WriteHeader(f.pastEnd)
		_, _ = w.Write([]byte(`{"code":"rest_post_invalid_page_number"}`))
		return
	}

	end := min(start+perPage, len(f.records))
	body := []map[string]any{}
	if start < len(f.records) {
		body = f.records[start:end]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, shop http.Handler, mutate ...func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(shop)
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:        srv.URL,
		APIPath:        "/wp-json/wc/v3",
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		PageSize:       100,
		Status:         "publish",
		Timeout:        2 * time.Second,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return NewClient(cfg, zap.NewNop())
}

func TestFetchAll_StopsOnShortPage(t *testing.T) {
	shop := &fakeShop{records: catalog(1, 140)}
	client := newTestClient(t, shop)

	products, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 140)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(140), products[139].ID)
	assert.Equal(t, int32(2), shop.requests.Load())

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.SetBasicAuth("ck_test", "cs_test")
	assert.Equal(t, req.Header.Get("Authorization"), shop.lastAuth.Load())
	assert.Equal(t, "/wp-json/wc/v3/products?order=asc&orderby=id&page=2&per_page=100&status=publish", shop.lastURL.Load())
}

func TestFetchAll_PastEndStatusEndsPagination(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound} {
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			shop := &fakeShop{records: catalog(1, 100), pastEnd: status}
			client := newTestClient(t, shop)

			products, err := client.FetchAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, products, 100)
			assert.Equal(t, int32(2), shop.requests.Load())
		})
	}
}

func TestFetchAll_EmptyCatalog(t *testing.T) {
	shop := &fakeShop{}
	client := newTestClient(t, shop)

	products, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int32(1), shop.requests.Load())
}

func TestFetchAll_FirstPageFailureIsFatal(t *testing.T) {
	shop := &fakeShop{override: map[int]func(http.ResponseWriter){
		1: func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"rest_no_route"}`))
		},
	}}
	client := newTestClient(t, shop)

	products, err := client.FetchAll(context.Background())
	assert.Nil(t, products)

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, fetchErr.Page)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "rest_no_route")
}

func TestFetchAll_ServerErrorMidPagination(t *testing.T) {
	shop := &fakeShop{
		records: catalog(1, 250),
		override: map[int]func(http.ResponseWriter){
			2: func(w http.ResponseWriter) { w.WriteHeader(http.StatusBadGateway) },
		},
	}
	client := newTestClient(t, shop)

	products, err := client.FetchAll(context.Background())
	assert.Nil(t, products)

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 2, fetchErr.Page)
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
}

func TestFetchAll_ValidationFailureRejectsPage(t *testing.T) {
	records := catalog(1, 140)
	records[117]["categories"] = []map[string]any{{"id": 4, "name": "", "slug": "x"}}
	shop := &fakeShop{records: records}
	client := newTestClient(t, shop)

	products, err := client.FetchAll(context.Background())
	assert.Nil(t, products)

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 2, fetchErr.Page)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, &ValidationError{Page: 2, Index: 17, ProductID: 118, Field: "categories[0].name", Tag: "required"}, valErr)
}

func TestFetchPage_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]any)
		field  string
		tag    string
	}{
		{"MissingID", func(p map[string]any) { delete(p, "id") }, "id", "required"},
		{"NegativeID", func(p map[string]any) { p["id"] = -3 }, "id", "gt"},
		{"StringID", func(p map[string]any) { p["id"] = "12" }, "id", "type"},
		{"BadPrice", func(p map[string]any) { p["price"] = "twelve" }, "price", "numeric"},
		{"UnknownType", func(p map[string]any) { p["type"] = "bundle" }, "type", "oneof"},
		{"CategoryWithoutID", func(p map[string]any) {
			p["categories"] = []map[string]any{{"name": "Books", "slug": "books"}}
		}, "categories[0].id", "required"},
		{"CategoryNullSlug", func(p map[string]any) {
			p["categories"] = []map[string]any{{"id": 1, "name": "Books", "slug": nil}}
		}, "categories[0].slug", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := catalog(1, 3)
			tt.mutate(records[1])
			client := newTestClient(t, &fakeShop{records: records})

			_, err := client.FetchPage(context.Background(), 1)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, 1, valErr.Index)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Equal(t, tt.tag, valErr.Tag)
		})
	}
}

func TestFetchPage_NormalizesNulls(t *testing.T) {
	raw := `[{"id":7,"name":null,"permalink":"https://shop.example/p/7","price":12.5,
		"regular_price":null,"sale_price":null,"downloadable":"1","virtual":null,
		"stock_quantity":null,"total_sales":"4","date_created":null,"categories":null,
		"tags":null,"images":null,"related_ids":null,"type":null,"status":"publish"}]`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "1")
		_, _ = w.Write([]byte(raw))
	}))

	page, err := client.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)

	p := page.Products[0]
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, "12.5", p.Price)
	assert.Equal(t, "", p.RegularPrice)
	assert.True(t, p.Downloadable)
	assert.False(t, p.Virtual)
	assert.Equal(t, int64(0), p.StockQuantity)
	assert.Equal(t, int64(4), p.TotalSales)
	assert.Equal(t, "", p.DateCreated)
	assert.NotNil(t, p.Categories)
	assert.Empty(t, p.Categories)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, -1, page.TotalPages)
}

func TestFetchPage_MalformedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))

	_, err := client.FetchPage(context.Background(), 1)
	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusOK, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "failed to decode body")
}

func TestFetchPage_NullRecordRejectsPage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "2")
		_, _ = w.Write([]byte(`[{"id":1,"name":"a","permalink":"https://shop.example/p/1","price":"1.00","categories":[]}, null]`))
	}))

	var err error
	require.NotPanics(t, func() {
		products, fetchErr := client.FetchAll(context.Background())
		assert.Nil(t, products)
		err = fetchErr
	})

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, fetchErr.Page)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, &ValidationError{Page: 1, Index: 1, Tag: "null"}, valErr)
}

func TestFetchAll_NullBodyIsNotAnEmptyCatalog(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`null`))
	}))

	products, err := client.FetchAll(context.Background())
	assert.Nil(t, products)

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, fetchErr.Page)
	assert.Equal(t, http.StatusOK, fetchErr.StatusCode)
	assert.ErrorIs(t, err, errNotProductArray)
}

func TestFetchPage_Timeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}), func(c *Config) { c.Timeout = 50 * time.Millisecond })

	_, err := client.FetchPage(context.Background(), 1)
	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
}

func TestFetchAll_PageDelay(t *testing.T) {
	shop := &fakeShop{records: catalog(1, 25)}
	client := newTestClient(t, shop, func(c *Config) {
		c.PageSize = 10
		c.PageDelay = 40 * time.Millisecond
	})

	start := time.Now()
	products, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 25)
	assert.Equal(t, int32(3), shop.requests.Load())

	// Two waits between three pages
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestFetchAll_CancelledContext(t *testing.T) {
	shop := &fakeShop{records: catalog(1, 25)}
	client := newTestClient(t, shop, func(c *Config) {
		c.PageSize = 10
		c.PageDelay = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchAll(ctx)
	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 2, fetchErr.Page)
}

func TestFetchAll_WarnsOnCountMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	shop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "5")
		_ = json.NewEncoder(w).Encode(catalog(1, 3))
	})
	srv := httptest.NewServer(shop)
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIPath: "/wp-json/wc/v3"}, zap.New(core))
	products, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)

	entries := logs.FilterMessage("Pulled product count differs from remote total").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].ContextMap()["remote_total"])
}

func TestCount(t *testing.T) {
	t.Run("FromHeader", func(t *testing.T) {
		shop := &fakeShop{records: catalog(1, 42)}
		client := newTestClient(t, shop)

		n, err := client.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, n)
		assert.Contains(t, shop.lastURL.Load(), "per_page=1")
	})

	t.Run("MissingHeader", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))

		_, err := client.Count(context.Background())
		assert.EqualError(t, err, "missing X-WP-Total header")
	})

	t.Run("Unauthorized", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.Count(context.Background())
		var fetchErr *RemoteFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
	})
}

func TestProductsURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://shop.example/", APIPath: "wp-json/wc/v3/", Status: ""}, zap.NewNop())

	u, err := client.productsURL(3, 50)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/wp-json/wc/v3/products?order=asc&orderby=id&page=3&per_page=50", u)

	_, err = NewClient(Config{}, zap.NewNop()).productsURL(1, 1)
	assert.Error(t, err)
}

func TestConfig_MarshalLogObject(t *testing.T) {
	cfg := Config{
		BaseURL:        "https://shop.example",
		ConsumerKey:    "ck_secret",
		ConsumerSecret: "cs_secret",
		PageSize:       500,
		PageDelay:      250 * time.Millisecond,
	}

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, cfg.MarshalLogObject(enc))

	assert.Equal(t, 100, enc.Fields["page_size"])
	assert.Equal(t, true, enc.Fields["has_credentials"])
	for _, v := range enc.Fields {
		assert.NotEqual(t, "ck_secret", v)
		assert.NotEqual(t, "cs_secret", v)
	}
}

func TestIsEndOfPages(t *testing.T) {
	assert.True(t, isEndOfPages(&RemoteFetchError{Page: 3, StatusCode: 400}))
	assert.True(t, isEndOfPages(&RemoteFetchError{Page: 3, StatusCode: 404}))
	assert.False(t, isEndOfPages(&RemoteFetchError{Page: 3, StatusCode: 500}))
	assert.False(t, isEndOfPages(errors.New("boom")))
}
