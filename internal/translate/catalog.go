package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is one entry of the supported target-language catalog.
type Language struct {
	Code string
	Name string // lower-case English name as reported by the service
}

// Label returns the selector text, e.g. "Spanish (es)".
func (l Language) Label() string {
	return fmt.Sprintf("%s (%s)", titleCaser.String(l.Name), l.Code)
}

var titleCaser = cases.Title(language.English)

// languages is the Google web-translate language list, ordered by name.
var languages = []Language{
	{"af", "afrikaans"},
	{"sq", "albanian"},
	{"am", "amharic"},
	{"ar", "arabic"},
	{"hy", "armenian"},
	{"az", "azerbaijani"},
	{"eu", "basque"},
	{"be", "belarusian"},
	{"bn", "bengali"},
	{"bs", "bosnian"},
	{"bg", "bulgarian"},
	{"ca", "catalan"},
	{"ceb", "cebuano"},
	{"ny", "chichewa"},
	{"zh-cn", "chinese (simplified)"},
	{"zh-tw", "chinese (traditional)"},
	{"co", "corsican"},
	{"hr", "croatian"},
	{"cs", "czech"},
	{"da", "danish"},
	{"nl", "dutch"},
	{"en", "english"},
	{"eo", "esperanto"},
	{"et", "estonian"},
	{"tl", "filipino"},
	{"fi", "finnish"},
	{"fr", "french"},
	{"fy", "frisian"},
	{"gl", "galician"},
	{"ka", "georgian"},
	{"de", "german"},
	{"el", "greek"},
	{"gu", "gujarati"},
	{"ht", "haitian creole"},
	{"ha", "hausa"},
	{"haw", "hawaiian"},
	{"iw", "hebrew"},
	{"he", "hebrew"},
	{"hi", "hindi"},
	{"hmn", "hmong"},
	{"hu", "hungarian"},
	{"is", "icelandic"},
	{"ig", "igbo"},
	{"id", "indonesian"},
	{"ga", "irish"},
	{"it", "italian"},
	{"ja", "japanese"},
	{"jw", "javanese"},
	{"kn", "kannada"},
	{"kk", "kazakh"},
	{"km", "khmer"},
	{"ko", "korean"},
	{"ku", "kurdish (kurmanji)"},
	{"ky", "kyrgyz"},
	{"lo", "lao"},
	{"la", "latin"},
	{"lv", "latvian"},
	{"lt", "lithuanian"},
	{"lb", "luxembourgish"},
	{"mk", "macedonian"},
	{"mg", "malagasy"},
	{"ms", "malay"},
	{"ml", "malayalam"},
	{"mt", "maltese"},
	{"mi", "maori"},
	{"mr", "marathi"},
	{"mn", "mongolian"},
	{"my", "myanmar (burmese)"},
	{"ne", "nepali"},
	{"no", "norwegian"},
	{"or", "odia"},
	{"ps", "pashto"},
	{"fa", "persian"},
	{"pl", "polish"},
	{"pt", "portuguese"},
	{"pa", "punjabi"},
	{"ro", "romanian"},
	{"ru", "russian"},
	{"sm", "samoan"},
	{"gd", "scots gaelic"},
	{"sr", "serbian"},
	{"st", "sesotho"},
	{"sn", "shona"},
	{"sd", "sindhi"},
	{"si", "sinhala"},
	{"sk", "slovak"},
	{"sl", "slovenian"},
	{"so", "somali"},
	{"es", "spanish"},
	{"su", "sundanese"},
	{"sw", "swahili"},
	{"sv", "swedish"},
	{"tg", "tajik"},
	{"ta", "tamil"},
	{"te", "telugu"},
	{"th", "thai"},
	{"tr", "turkish"},
	{"uk", "ukrainian"},
	{"ur", "urdu"},
	{"ug", "uyghur"},
	{"uz", "uzbek"},
	{"vi", "vietnamese"},
	{"cy", "welsh"},
	{"xh", "xhosa"},
	{"yi", "yiddish"},
	{"yo", "yoruba"},
	{"zu", "zulu"},
}

// Catalog is the fixed set of target languages offered to the user.
type Catalog struct {
	list   []Language
	byCode map[string]Language
}

// DefaultCatalog returns the catalog of the built-in providers.
func DefaultCatalog() *Catalog {
	return NewCatalog(languages)
}

// NewCatalog builds a catalog from an ordered list.
func NewCatalog(list []Language) *Catalog {
	c := &Catalog{
		list:   append([]Language(nil), list...),
		byCode: make(map[string]Language, len(list)),
	}
	for _, l := range c.list {
		c.byCode[l.Code] = l
	}
	return c
}

// Languages returns the catalog in display order.
func (c *Catalog) Languages() []Language {
	return append([]Language(nil), c.list...)
}

// Lookup finds a language by code. Codes are matched case-insensitively.
func (c *Catalog) Lookup(code string) (Language, bool) {
	l, ok := c.byCode[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

// Canonical returns the catalog's own spelling of code.
func (c *Catalog) Canonical(code string) (string, bool) {
	l, ok := c.Lookup(code)
	return l.Code, ok
}

// Valid reports whether code belongs to the catalog.
func (c *Catalog) Valid(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Name returns the display name for code or the code itself.
func (c *Catalog) Name(code string) string {
	if l, ok := c.Lookup(code); ok {
		return titleCaser.String(l.Name)
	}
	return code
}
