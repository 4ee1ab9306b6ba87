package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// certificatePages bounds extraction; the current and potential ratings
// sit on the first pages of a certificate.
const certificatePages = 2

// PdfToText reads certificates with poppler's pdftotext.
type PdfToText struct {
	bin string
}

// NewPdfToText returns a PdfToText running bin, or "pdftotext" from PATH.
func NewPdfToText(bin string) *PdfToText {
	if bin == "" {
		bin = "pdftotext"
	}
	return &PdfToText{bin: bin}
}

// ExtractText returns the text of the first certificate pages. Layout mode
// keeps each row of the rating table on one line. A PDF without a text
// layer returns ErrNoText.
func (p *PdfToText) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	args := []string{
		"-f", "1", "-l", strconv.Itoa(certificatePages),
		"-layout", "-enc", "UTF-8",
		pdfPath, "-",
	}
	cmd := exec.CommandContext(ctx, p.bin, args...)

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: pdftotext %s: %s", pdfPath, strings.TrimSpace(errOut.String()))
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return "", eris.Wrapf(ErrNoText, "ocr: pdftotext %s", pdfPath)
	}
	zap.L().Debug("ocr: pdftotext extracted certificate",
		zap.String("path", pdfPath),
		zap.Int("bytes", len(text)),
	)
	return text, nil
}
