// Package i18n holds the English and Somali string tables of the site and
// the helpers that pick a language for a request.
package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Lang is a supported language tag.
type Lang string

const (
	English Lang = "en"
	Somali  Lang = "so"
)

// Default is used when nothing else selects a language.
const Default = English

var tables = map[Lang]map[string]string{
	English: english,
	Somali:  somali,
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Make("so"),
})

// Supported returns the supported languages in display order.
func Supported() []Lang {
	return []Lang{English, Somali}
}

// Parse accepts "en", "so" and regional variants such as "so-KE".
func Parse(value string) (Lang, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", false
	}
	if i := strings.IndexAny(value, "-_"); i > 0 {
		value = value[:i]
	}
	switch Lang(value) {
	case English, Somali:
		return Lang(value), true
	}
	return "", false
}

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Lang) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported()[index]
}

// Lookup returns the string for key in lang, or the key itself when it is
// not defined.
func Lookup(lang Lang, key string) string {
	if value, ok := tables[lang][key]; ok && value != "" {
		return value
	}
	return key
}

// Keys returns every key defined in the English table, sorted.
func Keys() []string {
	keys := make([]string, 0, len(english))
	for key := range english {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Table returns a copy of the table for lang.
func Table(lang Lang) map[string]string {
	src := tables[lang]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Localizer carries the language of one request into templates.
type Localizer struct {
	Lang Lang
}

// T looks up key in the localizer's language.
func (l Localizer) T(key string) string {
	return Lookup(l.Lang, key)
}

// Pick selects one side of a bilingual pair.
func (l Localizer) Pick(en, so string) string {
	if l.Lang == Somali {
		return so
	}
	return en
}

// Is reports whether the localizer renders tag.
func (l Localizer) Is(tag string) bool {
	return string(l.Lang) == tag
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a price with thousands grouping, e.g. 2,500.
func FormatAmount(value float64) string {
	return amountPrinter.Sprint(number.Decimal(value, number.MaxFractionDigits(2)))
}
