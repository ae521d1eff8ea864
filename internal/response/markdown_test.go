package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMarkdown_Plain(t *testing.T) {
	in := "## Başlık\n\n**Kalın** ve *eğik* metin\n\n- bir\n- iki\n\n1. üç"

	assert.Equal(t, "Başlık\nKalın ve eğik metin\nbir\niki\nüç", CleanMarkdown(in, false))
}

func TestCleanMarkdown_PreserveKeepsStructure(t *testing.T) {
	in := "### Hafta 1\n- Renk avı\n- Şarkı\n\nSerbest oyun\n\n1. Birinci\n2. İkinci"

	out := CleanMarkdown(in, true)

	assert.Contains(t, out, "Hafta 1\n- Renk avı\n- Şarkı")
	assert.Contains(t, out, "\nSerbest oyun")
	assert.Contains(t, out, "1. Birinci\n2. İkinci")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "\n\n\n")
}

func TestCleanMarkdown_DropsBulletGlyphs(t *testing.T) {
	assert.Equal(t, "Makas\nKağıt", CleanMarkdown("• Makas\n\n• Kağıt", false))
}

func TestCleanMarkdown_HTMLInside(t *testing.T) {
	assert.Equal(t, "Bir\nİki", CleanMarkdown("Bir<br>İki", false))
}

func TestCleanMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", CleanMarkdown("", true))
	assert.Equal(t, "", CleanMarkdown("  \n\n ", false))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paragraphs", "<p>Bir</p><p>İki</p>", "Bir\nİki"},
		{"list", "<ul><li>Bir</li><li>İki</li></ul>", "• Bir\n• İki"},
		{"line break", "Bir<br/>İki", "Bir\nİki"},
		{"inline markup", "<p><strong>Not:</strong>  dikkat</p>", "Not: dikkat"},
		{"script dropped", "<p>Metin</p><script>alert(1)</script>", "Metin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestCleanTextOnlyStripsMarkup(t *testing.T) {
	assert.Equal(t, "3 < 5 doğru", cleanText(" 3 < 5 doğru "))
	assert.True(t, looksLikeHTML("a<br>b"))
	assert.False(t, looksLikeHTML("a < b"))
}
