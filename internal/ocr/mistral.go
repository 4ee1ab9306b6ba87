package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/resilience"
)

const (
	mistralOCREndpoint  = "https://api.mistral.ai/v1/ocr"
	defaultMistralModel = "mistral-ocr-latest"
	mistralTimeout      = 60 * time.Second
)

// MistralOCR extracts text from PDFs using the Mistral OCR API.
type MistralOCR struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	retry    resilience.Policy
}

// NewMistralOCR creates a MistralOCR extractor. Empty model or endpoint
// fall back to the public defaults.
func NewMistralOCR(apiKey, model, endpoint string) *MistralOCR {
	if model == "" {
		model = defaultMistralModel
	}
	if endpoint == "" {
		endpoint = mistralOCREndpoint
	}
	return &MistralOCR{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: mistralTimeout},
		retry:    resilience.DefaultPolicy(),
	}
}

type mistralOCRRequest struct {
	Model    string             `json:"model"`
	Document mistralOCRDocument `json:"document"`
}

type mistralOCRDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

type mistralOCRResponse struct {
	Pages []mistralOCRPage `json:"pages"`
}

type mistralOCRPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// ExtractText uploads the certificate inline and joins the markdown of
// every returned page.
func (m *MistralOCR) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: read PDF %s", pdfPath)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	dataURL := "data:application/pdf;base64," + encoded

	reqBody := mistralOCRRequest{
		Model: m.model,
		Document: mistralOCRDocument{
			Type:        "document_url",
			DocumentURL: dataURL,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", eris.Wrap(err, "ocr: marshal mistral request")
	}

	policy := m.retry
	policy.OnRetry = resilience.LogRetry("ocr", "mistral")
	ocrResp, err := resilience.DoVal(ctx, policy, func(ctx context.Context) (mistralOCRResponse, error) {
		return m.post(ctx, bodyBytes)
	})
	if err != nil {
		return "", err
	}

	zap.L().Debug("ocr: mistral pages", zap.String("path", pdfPath), zap.Int("pages", len(ocrResp.Pages)))

	var sb strings.Builder
	for i, page := range ocrResp.Pages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(page.Markdown)
	}

	return sb.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// post sends one OCR request. Throttling and server errors come back as
// resilience.TransientError.
func (m *MistralOCR) post(ctx context.Context, body []byte) (mistralOCRResponse, error) {
	var out mistralOCRResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return out, eris.Wrap(err, "ocr: create mistral request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return out, eris.Wrap(err, "ocr: mistral API call")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, eris.Wrap(err, "ocr: read mistral response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("ocr: mistral API returned %d: %s", resp.StatusCode, truncate(string(respBody), 512))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return out, resilience.NewTransientError(err, resp.StatusCode)
		}
		return out, err
	}

	if err := json.Unmarshal(respBody, &out); err != nil {
		return out, eris.Wrap(err, "ocr: unmarshal mistral response")
	}
	return out, nil
}
