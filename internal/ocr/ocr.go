// Package ocr reads Energy Performance Certificates. A certificate PDF is
// turned into text by an Extractor and the ratings are parsed from that
// text.
package ocr

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/sells-group/property-checklist/internal/config"
)

// Certificate text providers selectable through ocr.provider.
const (
	ProviderLocal   = "local"
	ProviderMistral = "mistral"
)

// ErrNoText is returned when a certificate yields no text, which usually
// means a scanned PDF that only the mistral provider can read.
var ErrNoText = errors.New("ocr: certificate has no text layer")

// Extractor turns a certificate PDF into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// NewExtractor picks the certificate text provider named by cfg.Provider.
// An empty provider means local.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case ProviderLocal, "":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case ProviderMistral:
		if cfg.MistralKey == "" {
			return nil, eris.New("ocr: mistral provider needs ocr.mistral_api_key")
		}
		return NewMistralOCR(cfg.MistralKey, cfg.MistralModel, cfg.MistralURL), nil
	default:
		return nil, eris.Errorf("ocr: provider %q is not %s or %s", cfg.Provider, ProviderLocal, ProviderMistral)
	}
}
