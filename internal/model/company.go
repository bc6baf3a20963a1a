package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// unknownCompany is used when no name can be derived from a URL.
const unknownCompany = "Unknown"

// CompanyName derives a readable company name from a website URL.
// The first label of the domain is used, with dash-separated words
// title-cased: "https://www.acme-tools.com/x" becomes "Acme Tools".
func CompanyName(rawURL string) string {
	clean := strings.TrimSpace(rawURL)
	clean = strings.TrimPrefix(clean, "https://")
	clean = strings.TrimPrefix(clean, "http://")
	clean = strings.TrimPrefix(clean, "www.")

	domain, _, _ := strings.Cut(clean, "/")
	name, _, _ := strings.Cut(domain, ".")
	if name == "" {
		return unknownCompany
	}

	caser := cases.Title(language.English)
	words := strings.Split(name, "-")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
