package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

func testClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := NewClient(log, Config{URL: srv.URL, APIKey: "k", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c, srv
}

func TestGetByTriple(t *testing.T) {
	var gotAuth string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/learningObject/getWrapped" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("hruid") != "org_intro" || q.Get("language") != "en" || q.Get("version") != "3" {
			t.Errorf("query = %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"abc","hruid":"org_intro","language":"en","version":3,"title":"Intro","available":true}`))
	}))

	rec, err := c.GetByTriple(context.Background(), "org_intro", "en", 3)
	if err != nil {
		t.Fatalf("get by triple: %v", err)
	}
	if rec.HrUID != "org_intro" || rec.Version != 3 || !rec.Available {
		t.Fatalf("wrong record: %+v", rec)
	}
	if gotAuth != "Bearer k" {
		t.Fatalf("auth header = %q", gotAuth)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestServerErrorIsNetwork(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.GetByID(context.Background(), "any")
	if !domain.IsKind(err, domain.KindNetwork) {
		t.Fatalf("expected network, got %v", err)
	}
}

func TestUnreachableCatalogIsNetwork(t *testing.T) {
	c, srv := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := c.GetByID(context.Background(), "any")
	if !domain.IsKind(err, domain.KindNetwork) {
		t.Fatalf("expected network, got %v", err)
	}
}

func TestBadJSONIsNetwork(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hruid": `))
	}))

	_, err := c.GetByID(context.Background(), "any")
	if !domain.IsKind(err, domain.KindNetwork) {
		t.Fatalf("expected network, got %v", err)
	}
}

func TestListForPathID(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/learningPath/pth1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"nodes":[{"learningobject_hruid":"org_intro","language":"en","version":1,"start_node":true}]}`))
	}))

	nodes, err := c.ListForPathID(context.Background(), "pth1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 1 || nodes[0].HrUID != "org_intro" || !nodes[0].StartNode {
		t.Fatalf("wrong nodes: %+v", nodes)
	}
}

func TestEmptyIDRejected(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	if _, err := c.GetByID(context.Background(), "  "); !domain.IsKind(err, domain.KindInvalidReference) {
		t.Fatalf("expected invalid_reference, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{}); err == nil {
		t.Fatal("empty config accepted")
	}
	if err := ValidateConfig(Config{URL: "not a url"}); err == nil {
		t.Fatal("relative url accepted")
	}
	if err := ValidateConfig(Config{URL: "https://catalog.example.org/api"}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}
