package analysis

import "strings"

const defaultLanguage = "English"

var languageNames = map[string]string{
	"en":  "English",
	"ta":  "Tamil",
	"hi":  "Hindi",
	"te":  "Telugu",
	"ml":  "Malayalam",
	"eng": "English",
	"tam": "Tamil",
	"hin": "Hindi",
	"tel": "Telugu",
	"mal": "Malayalam",
}

// LanguageName resolves a provider language code such as "en", "en-US"
// or "tam" to a display name. Unknown codes resolve to English.
func LanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return defaultLanguage
}
