// Package redact masks sensitive values in log attributes and reported
// issues.
package redact

import (
	"net/url"
	"strings"

	"github.com/thoreinstein/reqy/pkg/reqy"
)

// SecretKeyPatterns contains substrings that mark a field or attribute name
// as sensitive. Names are compared upper-cased with "_" and "-" removed, so
// "api_key", "apiKey" and "API-KEY" all match "APIKEY".
var SecretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"PASSWD",
	"APIKEY",
	"PRIVATEKEY",
	"CREDENTIAL",
	"AUTHORIZATION",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token
	"sk-",   // OpenAI/Anthropic keys
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts the password of a URL with embedded credentials. Strings
// that do not parse or carry no password are returned unchanged.
func MaskURL(rawURL string) string {
	if !strings.Contains(rawURL, "@") {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}
	password, ok := parsed.User.Password()
	if !ok || password == "" {
		return rawURL
	}
	parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
	return parsed.String()
}

// ShouldMask reports whether the name suggests sensitive data. For dotted
// issue keys only the last segment is considered.
func ShouldMask(name string) bool {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.ToUpper(name))
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(normalized, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Value masks value when name is sensitive or value looks like a token or
// a URL with credentials. Non-string values under a sensitive name are
// replaced entirely.
func Value(name string, value any) any {
	s, isString := value.(string)
	switch {
	case ShouldMask(name) && isString:
		return MaskValue(s)
	case ShouldMask(name) && value != nil:
		return "********"
	case isString && ContainsTokenPrefix(s):
		return MaskValue(s)
	case isString:
		return MaskURL(s)
	default:
		return value
	}
}

// Issues returns a copy of issues with sensitive values masked. Failure
// details embed the rendered value, so issues with a masked value have any
// occurrence of the original string in their details masked too.
func Issues(issues reqy.Issues) reqy.Issues {
	if issues == nil {
		return nil
	}
	out := make(reqy.Issues, len(issues))
	for i, issue := range issues {
		out[i] = issue
		if !issue.HasValue {
			continue
		}
		masked := Value(issue.Key, issue.Value)
		out[i].Value = masked
		if orig, ok := issue.Value.(string); ok && orig != "" {
			if m, ok := masked.(string); ok && m != orig {
				out[i].Details = strings.ReplaceAll(issue.Details, orig, m)
			}
		}
	}
	return out
}
