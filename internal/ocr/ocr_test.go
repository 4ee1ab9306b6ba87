package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/property-checklist/internal/config"
	"github.com/sells-group/property-checklist/internal/resilience"
)

func TestNewExtractor_Local(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{Provider: "local", PdfToTextPath: "/usr/bin/pdftotext"})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, ext)
}

func TestNewExtractor_LocalDefault(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{Provider: ""})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, ext)
}

func TestNewExtractor_MistralMissingKey(t *testing.T) {
	_, err := NewExtractor(config.OCRConfig{Provider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral provider needs ocr.mistral_api_key")
}

func TestNewExtractor_MistralWithKey(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{
		Provider:     "mistral",
		MistralKey:   "test-key",
		MistralModel: "mistral-ocr-2505",
		MistralURL:   "https://ocr.internal/v1/ocr",
	})
	require.NoError(t, err)
	m, ok := ext.(*MistralOCR)
	require.True(t, ok)
	assert.Equal(t, "mistral-ocr-2505", m.model)
	assert.Equal(t, "https://ocr.internal/v1/ocr", m.endpoint)
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := NewExtractor(config.OCRConfig{Provider: "unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `provider "unknown" is not local or mistral`)
}

func TestPdfToText_BinPath(t *testing.T) {
	p := NewPdfToText("")
	assert.Equal(t, "pdftotext", p.bin)

	p = NewPdfToText("/custom/pdftotext")
	assert.Equal(t, "/custom/pdftotext", p.bin)
}

func TestMistralOCR_DefaultModel(t *testing.T) {
	m := NewMistralOCR("key", "", "")
	assert.Equal(t, defaultMistralModel, m.model)
	assert.Equal(t, mistralOCREndpoint, m.endpoint)
	assert.Equal(t, mistralTimeout, m.client.Timeout)
}

func TestMistralOCR_CustomModel(t *testing.T) {
	m := NewMistralOCR("key", "custom-model", "")
	assert.Equal(t, "custom-model", m.model)
}

func newTestMistral(url string) *MistralOCR {
	return &MistralOCR{
		apiKey:   "test-key",
		model:    "test-model",
		endpoint: url,
		client:   &http.Client{},
		retry:    resilience.Policy{Attempts: 3, Base: time.Millisecond, Cap: 2 * time.Millisecond},
	}
}

func writeTestPDF(t *testing.T) string {
	t.Helper()
	pdfPath := filepath.Join(t.TempDir(), "epc.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0644))
	return pdfPath
}

func TestMistralOCR_ExtractText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req mistralOCRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "document_url", req.Document.Type)
		assert.Contains(t, req.Document.DocumentURL, "data:application/pdf;base64,")

		resp := mistralOCRResponse{
			Pages: []mistralOCRPage{
				{Index: 0, Markdown: "# Energy performance certificate"},
				{Index: 1, Markdown: "| Current | 62 | D |"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer srv.Close()

	text, err := newTestMistral(srv.URL).ExtractText(context.Background(), writeTestPDF(t))
	require.NoError(t, err)
	assert.Equal(t, "# Energy performance certificate\n\n| Current | 62 | D |", text)
}

func TestMistralOCR_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := newTestMistral(srv.URL).ExtractText(context.Background(), writeTestPDF(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral API returned 401")
}

func TestMistralOCR_FileNotFound(t *testing.T) {
	m := NewMistralOCR("key", "model", "")
	_, err := m.ExtractText(context.Background(), "/nonexistent/file.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read PDF")
}

func TestPdfToText_ExtractText_BinaryNotFound(t *testing.T) {
	p := NewPdfToText("/nonexistent/pdftotext")
	_, err := p.ExtractText(context.Background(), "/tmp/test.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr: pdftotext /tmp/test.pdf")
}

func TestPdfToText_ExtractText_Success(t *testing.T) {
	// Create a fake pdftotext script that echoes content
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	script := "#!/bin/sh\necho 'Extracted text content'\n"
	require.NoError(t, os.WriteFile(fakeBin, []byte(script), 0755))

	p := NewPdfToText(fakeBin)
	text, err := p.ExtractText(context.Background(), "/tmp/dummy.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Extracted text content")
}

func TestPdfToText_ExtractText_Args(t *testing.T) {
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	script := "#!/bin/sh\necho \"$@\"\n"
	require.NoError(t, os.WriteFile(fakeBin, []byte(script), 0755))

	text, err := NewPdfToText(fakeBin).ExtractText(context.Background(), "/tmp/epc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "-f 1 -l 2 -layout -enc UTF-8 /tmp/epc.pdf -", strings.TrimSpace(text))
}

func TestPdfToText_ExtractText_NoTextLayer(t *testing.T) {
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	require.NoError(t, os.WriteFile(fakeBin, []byte("#!/bin/sh\nprintf '\\f\\n'\n"), 0755))

	_, err := NewPdfToText(fakeBin).ExtractText(context.Background(), "/tmp/scan.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestMistralOCR_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{invalid json`)) //nolint:errcheck
	}))
	defer srv.Close()

	m := newTestMistral(srv.URL)
	pdfPath := writeTestPDF(t)

	_, err := m.ExtractText(context.Background(), pdfPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal mistral response")
}

func TestMistralOCR_EmptyPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := mistralOCRResponse{Pages: []mistralOCRPage{}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer srv.Close()

	m := newTestMistral(srv.URL)
	pdfPath := writeTestPDF(t)

	text, err := m.ExtractText(context.Background(), pdfPath)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestMistralOCR_RetriesThrottling(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(mistralOCRResponse{Pages: []mistralOCRPage{{Markdown: "energy rating is B"}}}) //nolint:errcheck
	}))
	defer srv.Close()

	text, err := newTestMistral(srv.URL).ExtractText(context.Background(), writeTestPDF(t))
	require.NoError(t, err)
	assert.Equal(t, "energy rating is B", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMistralOCR_GivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestMistral(srv.URL).ExtractText(context.Background(), writeTestPDF(t))
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
	assert.Equal(t, int32(3), calls.Load())
}
