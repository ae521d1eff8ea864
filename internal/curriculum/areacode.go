package curriculum

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAreaCode is used for subjects without a registered code
const DefaultAreaCode = "AB"

var areaCodes = map[string]string{
	"MATEMATİK":         "MAB",
	"TÜRKÇE":            "TAB",
	"HAREKET VE SAĞLIK": "HSAB",
	"SANAT":             "SNAB",
	"FEN VE EKOLOJİ":    "FAB",
	"MÜZİK":             "MÜZAB",
	"SOSYAL":            "SOAB",
}

// AreaCode returns the area-skill code prefix of a subject, e.g.
// "Matematik" -> "MAB". Matching is case-insensitive under Turkish rules.
func AreaCode(subject string) string {
	key := cases.Upper(language.Turkish).String(strings.TrimSpace(subject))
	if code, ok := areaCodes[key]; ok {
		return code
	}
	return DefaultAreaCode
}

// StripRedundantPrefix removes areaPrefix and one following '.' from
// code, e.g. ("TAB1.1.SB2", "TAB") -> "1.1.SB2". Codes that do not start
// with areaPrefix are returned unchanged.
func StripRedundantPrefix(code, areaPrefix string) string {
	if areaPrefix == "" || !strings.HasPrefix(code, areaPrefix) {
		return code
	}
	return strings.TrimPrefix(strings.TrimPrefix(code, areaPrefix), ".")
}
