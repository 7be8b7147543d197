package fetch

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"flipbook-viewer/internal/types"
)

func TestFetchDocument(t *testing.T) {
	payload := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 1024)...)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer server.Close()

	f := NewFetcher(10)
	data, err := f.FetchDocument(server.URL + "/book.pdf")
	if err != nil {
		t.Fatalf("FetchDocument() error = %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("fetched %d bytes, want %d identical bytes", len(data), len(payload))
	}
}

func TestFetchDocumentRejectsNonPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a pdf</html>"))
	}))
	defer server.Close()

	f := NewFetcher(10)
	_, err := f.FetchDocument(server.URL)
	if err == nil {
		t.Fatal("FetchDocument() accepted non-PDF content")
	}

	// Content errors must fail fast, not burn the retry budget.
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrInvalidInput {
		t.Errorf("error = %v, want invalid-input app error", err)
	}
}

func TestFetchDocumentInvalidURL(t *testing.T) {
	f := NewFetcher(10)

	if _, err := f.FetchDocument(""); err == nil {
		t.Error("FetchDocument(\"\") accepted an empty URL")
	}
	if _, err := f.FetchDocument("ftp://example.com/a.pdf"); err == nil {
		t.Error("FetchDocument() accepted a non-http scheme")
	}
}

func TestFetchDocumentSizeCap(t *testing.T) {
	// 2 MB of PDF-prefixed data against a 1 MB cap.
	payload := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 2*1024*1024)...)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	f := NewFetcher(1)
	_, err := f.FetchDocument(server.URL)
	if err == nil {
		t.Fatal("FetchDocument() accepted a document over the size cap")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrInvalidInput {
		t.Errorf("error = %v, want invalid-input app error", err)
	}
}
