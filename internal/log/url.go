package log

import (
	"net/url"
	"regexp"
	"strings"
)

// urlPattern finds http(s) URLs embedded in free text such as error messages.
var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// sensitiveParams are query parameter names whose values are masked.
var sensitiveParams = map[string]bool{
	"token":        true,
	"access_token": true,
	"api_key":      true,
	"apikey":       true,
	"key":          true,
	"signature":    true,
	"sig":          true,
	"password":     true,
	"secret":       true,
	"auth":         true,
	"code":         true,
}

// RedactURL masks the userinfo password and sensitive query parameters of
// rawURL. Strings that do not parse as absolute URLs are returned unchanged.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}

	changed := false
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), MaskValue)
			changed = true
		}
	}

	if u.RawQuery != "" {
		query := u.Query()
		for name, values := range query {
			if !sensitiveParams[strings.ToLower(name)] {
				continue
			}
			for i := range values {
				values[i] = MaskValue
			}
			changed = true
		}
		if changed {
			u.RawQuery = query.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return u.String()
}

// RedactURLs applies RedactURL to every URL found in text and reports
// whether anything was masked.
func RedactURLs(text string) (string, bool) {
	if !strings.Contains(text, "://") {
		return text, false
	}
	changed := false
	out := urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		redacted := RedactURL(match)
		if redacted != match {
			changed = true
		}
		return redacted
	})
	return out, changed
}
