package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/storage"
)

type fakeDocumentStore struct {
	objects map[string][]byte
	info    map[string]storage.ObjectInfo
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		objects: make(map[string][]byte),
		info:    make(map[string]storage.ObjectInfo),
	}
}

func (s *fakeDocumentStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.info[key] = storage.ObjectInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  contentType,
		LastModified: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	return nil
}

func (s *fakeDocumentStore) Get(ctx context.Context, key string) (io.ReadCloser, *storage.ObjectInfo, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, nil, fmt.Errorf("object %s not found", key)
	}
	info := s.info[key]
	return io.NopCloser(bytes.NewReader(data)), &info, nil
}

func (s *fakeDocumentStore) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var result []storage.ObjectInfo
	for key, info := range s.info {
		if strings.HasPrefix(key, prefix) {
			result = append(result, info)
		}
	}
	return result, nil
}

func documentRouter(store storage.DocumentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewDocumentHandler(store)
	router := gin.New()
	group := router.Group("/orders/:id/documents")
	group.GET("", handler.List)
	group.GET("/:name", handler.Download)
	return router
}

func TestDocumentListFormatsTimestamps(t *testing.T) {
	store := newFakeDocumentStore()
	err := store.Put(context.Background(), "orders/po-1/bill-of-lading.pdf",
		strings.NewReader("pdf-bytes"), 9, "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	router := documentRouter(store)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/po-1/documents", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Documents []struct {
			Name         string `json:"name"`
			LastModified string `json:"last_modified"`
		} `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(body.Documents))
	}
	if body.Documents[0].Name != "bill-of-lading.pdf" {
		t.Errorf("name = %q", body.Documents[0].Name)
	}
	if _, err := time.Parse(time.RFC3339, body.Documents[0].LastModified); err != nil {
		t.Errorf("last_modified %q is not RFC3339: %v", body.Documents[0].LastModified, err)
	}
}

func TestDocumentDownload(t *testing.T) {
	store := newFakeDocumentStore()
	err := store.Put(context.Background(), "orders/po-1/invoice.pdf",
		strings.NewReader("invoice-bytes"), 13, "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	router := documentRouter(store)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/po-1/documents/invoice.pdf", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "invoice-bytes" {
		t.Errorf("body = %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders/po-1/documents/missing.pdf", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing document status = %d, want 404", w.Code)
	}
}
