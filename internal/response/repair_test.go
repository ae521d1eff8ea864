package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around fence", "İşte plan:\n```json\n{\"a\":1}\n```\nİyi çalışmalar", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1", `{"a":1`},
		{"no fence", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestScrubControlChars(t *testing.T) {
	in := "{\"a\":\"x\ny\tz\x01\"}"
	assert.Equal(t, "{\"a\":\"x\\ny\\tz \"}", ScrubControlChars(in))
}

func TestRemoveStrayCommas(t *testing.T) {
	assert.Equal(t, `{"a":[1,2]}`, RemoveStrayCommas(`{"a":[1,2,],}`))
	assert.Equal(t, `[1,2]`, RemoveStrayCommas(`[1,,2]`))
	assert.Equal(t, `{"a":[1,2]}`, RemoveStrayCommas("{\"a\":[1,\n ,2,\n]}"))
}

func TestRemoveStrayCommas_KeepsStringLiterals(t *testing.T) {
	tests := []string{
		`{"notlar":"a,, b"}`,
		`{"notlar":"x, ]"}`,
		`{"notlar":"kapanış ,}"}`,
		`{"notlar":"kaçış \", ] devam"}`,
	}
	for _, in := range tests {
		assert.Equal(t, in, RemoveStrayCommas(in), in)
	}
	assert.Equal(t, `{"a":"x, ]","b":["y,,"]}`, RemoveStrayCommas(`{"a":"x, ]","b":["y,,",],}`))
}

func TestRemoveInvisible(t *testing.T) {
	assert.Equal(t, `{"a":1}`, RemoveInvisible("\ufeff{\"a\":\u200b1}"))
}

func TestRepair_Direct(t *testing.T) {
	doc := Repair(`{"a": 1, "b": "x"}`, "a", "b")

	assert.Equal(t, StageDirect, doc.Report.Stage)
	assert.False(t, doc.Report.Degraded())
	assert.JSONEq(t, `1`, string(doc.Fields["a"]))
}

func TestRepair_MissingClosingBraceMatchesWellFormed(t *testing.T) {
	wellFormed := Repair(`{"a": {"b": [1, 2]}, "c": "d"}`)
	truncated := Repair(`{"a": {"b": [1, 2]}, "c": "d"`)

	assert.Equal(t, StageBracketRepair, truncated.Report.Stage)
	assert.Equal(t, wellFormed.Fields, truncated.Fields)
}

func TestRepair_ClosesTruncatedString(t *testing.T) {
	doc := Repair(`{"a": "hello wor`)

	require.Equal(t, StageBracketRepair, doc.Report.Stage)
	assert.JSONEq(t, `"hello wor"`, string(doc.Fields["a"]))
}

func TestRepair_DropsDanglingKey(t *testing.T) {
	doc := Repair(`{"a": [1, 2], "b":`)

	require.Equal(t, StageBracketRepair, doc.Report.Stage)
	assert.JSONEq(t, `[1, 2]`, string(doc.Fields["a"]))
	assert.NotContains(t, doc.Fields, "b")
}

func TestRepair_FieldSalvage(t *testing.T) {
	raw := `{"kavramsal_beceriler": ["KB1", "KB2", "egilimler": ["E1"], "notlar": "x"}`

	doc := Repair(raw, "kavramsal_beceriler", "egilimler", "notlar")

	assert.Equal(t, StageFieldSalvage, doc.Report.Stage)
	assert.Equal(t, []string{"egilimler", "notlar"}, doc.Report.Salvaged)
	assert.NotContains(t, doc.Fields, "kavramsal_beceriler")
	assert.JSONEq(t, `["E1"]`, string(doc.Fields["egilimler"]))
	assert.JSONEq(t, `"x"`, string(doc.Fields["notlar"]))
}

func TestRepair_NothingRecoverable(t *testing.T) {
	for _, raw := range []string{"", "model unavailable", "{{{"} {
		doc := Repair(raw, "a")
		assert.Equal(t, StageDefaults, doc.Report.Stage, raw)
		assert.Empty(t, doc.Fields, raw)
	}
}

func TestDocument_LookupSalvagesNestedLeaf(t *testing.T) {
	raw := `{"x": ["broken", "farklilastirma": {"zenginlestirme": "Z", "destekleme": ["D"`

	doc := Repair(raw, "x", "farklilastirma")

	v, ok := doc.Lookup("farklilastirma", "zenginlestirme")
	require.True(t, ok)
	assert.JSONEq(t, `"Z"`, string(v))

	_, ok = doc.Lookup("farklilastirma", "destekleme")
	assert.False(t, ok)
}

func TestSalvage_SkipsBrokenOccurrence(t *testing.T) {
	text := `{"a": [1, 2}, "b": {"a": [3]}}`

	v, ok := Salvage(text, "a")
	require.True(t, ok)
	assert.JSONEq(t, `[3]`, string(v))
}

func TestNormalizeDuration(t *testing.T) {
	assert.Equal(t, 35, NormalizeDuration("35 dakika"))
	assert.Equal(t, 40, NormalizeDuration(float64(40)))
	assert.Equal(t, 25, NormalizeDuration(25))
	assert.Equal(t, DefaultDuration, NormalizeDuration("yarım saat"))
	assert.Equal(t, DefaultDuration, NormalizeDuration(nil))
	assert.Equal(t, DefaultDuration, NormalizeDuration("0"))
}
