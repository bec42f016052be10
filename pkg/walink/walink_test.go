package walink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProductID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "wa.me link with business number",
			raw:  "https://wa.me/p/24596434279999779/2348027550551",
			want: "24596434279999779",
		},
		{
			name: "wa.me link without business number",
			raw:  "https://wa.me/p/24596434279999779",
			want: "24596434279999779",
		},
		{
			name: "wa.me link with trailing slash",
			raw:  "https://wa.me/p/24596434279999779/",
			want: "24596434279999779",
		},
		{
			name: "catalog link",
			raw:  "https://www.whatsapp.com/catalog/24596434279999780",
			want: "24596434279999780",
		},
		{
			name: "catalog link with extra path",
			raw:  "https://www.whatsapp.com/catalog/24596434279999780/something",
			want: "24596434279999780",
		},
		{
			name: "api link with product_id",
			raw:  "https://api.whatsapp.com/send?product_id=24596434279999781&phone=2348027550551",
			want: "24596434279999781",
		},
		{
			name: "api link with product_id at end",
			raw:  "https://api.whatsapp.com/send?product_id=24596434279999781",
			want: "24596434279999781",
		},
		{
			name: "raw numeric id",
			raw:  "24596434279999779",
			want: "24596434279999779",
		},
		{
			name: "product code",
			raw:  "HERB004",
			want: "HERB004",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  HERB004  ",
			want: "HERB004",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "unrelated url falls through trimmed",
			raw:  " https://example.com/shop ",
			want: "https://example.com/shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProductID(tt.raw))
		})
	}
}

func TestIsShareLink(t *testing.T) {
	t.Parallel()

	assert.True(t, IsShareLink("https://wa.me/p/123"))
	assert.True(t, IsShareLink("http://wa.me/p/123"))
	assert.False(t, IsShareLink("HERB001"))
	assert.False(t, IsShareLink("24596434279999779"))
}
