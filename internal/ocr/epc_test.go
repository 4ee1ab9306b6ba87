package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/property-checklist/internal/normalize"
)

func intPtr(v int) *int { return &v }

func TestParseCertificate(t *testing.T) {
	n := normalize.Default()
	tests := []struct {
		name string
		text string
		want Certificate
		ok   bool
	}{
		{
			name: "summary sentences",
			text: "The property's current energy rating is D.\nIt has the potential to be B.",
			want: Certificate{Rating: "D", Potential: "B"},
			ok:   true,
		},
		{
			name: "layout table",
			text: "Energy rating and score\n  Current      62   D\n  Potential    81   B\n",
			want: Certificate{Rating: "D", Score: intPtr(62), Potential: "B", PotentialScore: intPtr(81)},
			ok:   true,
		},
		{
			name: "markdown table",
			text: "| | Score | Band |\n|---|---|---|\n| **Current** | 71 | C |\n| **Potential** | 86 | B |",
			want: Certificate{Rating: "C", Score: intPtr(71), Potential: "B", PotentialScore: intPtr(86)},
			ok:   true,
		},
		{
			name: "letter then score",
			text: "Current rating: C (72)",
			want: Certificate{Rating: "C", Score: intPtr(72)},
			ok:   true,
		},
		{
			name: "sentence wins over table letter",
			text: "The current energy rating is E. Current 62 D",
			want: Certificate{Rating: "E", Score: intPtr(62)},
			ok:   true,
		},
		{
			name: "score only",
			text: "The property's energy score is 45.",
			want: Certificate{Rating: "E", Score: intPtr(45)},
			ok:   true,
		},
		{
			name: "out of range score ignored",
			text: "Current 250 D",
			want: Certificate{Rating: "D"},
			ok:   true,
		},
		{
			name: "no rating",
			text: "Rules on letting this property",
			ok:   false,
		},
		{
			name: "empty",
			text: "",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCertificate(n, tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) ExtractText(context.Context, string) (string, error) {
	return f.text, f.err
}

func TestReader_Read(t *testing.T) {
	n := normalize.Default()
	ctx := context.Background()

	c, err := NewReader(fakeExtractor{text: "energy rating is C"}, n).Read(ctx, "epc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "C", c.Rating)

	_, err = NewReader(fakeExtractor{text: "nothing here"}, n).Read(ctx, "epc.pdf")
	assert.ErrorIs(t, err, ErrNoRating)

	_, err = NewReader(fakeExtractor{err: errors.New("boom")}, n).Read(ctx, "epc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read certificate")
}
