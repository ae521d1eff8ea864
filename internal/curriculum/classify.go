// Package curriculum derives categorized curriculum snapshots from
// learning-outcome records and merges snapshots across activities.
package curriculum

import (
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// prefixRule maps a literal code prefix to a category. except lists
// longer prefixes that start with prefix but belong elsewhere.
type prefixRule struct {
	prefix   string
	except   []string
	category model.Category
}

// Longer prefixes come first; first match wins.
var prefixTable = []prefixRule{
	{prefix: "KB", category: model.CategoryConceptualSkill},
	{prefix: "SDB", category: model.CategorySocialEmotional},
	{prefix: "OB", category: model.CategoryLiteracy},
	{prefix: "E", category: model.CategoryTendency},
	{prefix: "D", except: []string{"DB"}, category: model.CategoryValue},
}

// Classify maps a coded token to its curriculum category. Unrecognized
// tokens fall back to CategoryAreaSkill.
func Classify(token string) model.Category {
	token = strings.TrimLeft(token, " \t\r\n-•*·")
	for _, rule := range prefixTable {
		if !strings.HasPrefix(token, rule.prefix) {
			continue
		}
		if hasAnyPrefix(token, rule.except) {
			continue
		}
		return rule.category
	}
	return model.CategoryAreaSkill
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
