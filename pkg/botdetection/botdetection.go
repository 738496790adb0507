// Package botdetection flags open and click events that were triggered by
// machines (link scanners, prefetchers, scripts) rather than a recipient.
package botdetection

import "strings"

// Category says what kind of client produced an event
type Category string

const (
	CategoryHuman Category = ""
	// CategoryMissing is an event without a user agent
	CategoryMissing      Category = "missing"
	CategoryCrawler      Category = "crawler"
	CategoryMailSecurity Category = "mail_security"
	CategoryHeadless     Category = "headless"
	CategoryHTTPClient   Category = "http_client"
)

// Patterns are matched against the lowercased user agent, first category wins.
// Mail security gateways come first: they often also contain "bot" or "scanner".
var signatures = []struct {
	category Category
	patterns []string
}{
	{CategoryMailSecurity, []string{
		"safelinks", "proofpoint", "mimecast", "atp", "barracuda", "forcepoint",
		"cisco ironport", "symantec", "mcafee", "trend micro", "sophos", "fireeye",
		"emailsecurity", "urldefense", "linkprotect", "urlscan", "urlfilter",
		"emailprotection", "antivirus", "malware", "threatdetection", "securityscanner",
		"security",
	}},
	{CategoryCrawler, []string{"bot", "crawler", "spider", "scanner", "linkcheck"}},
	{CategoryHeadless, []string{"headlesschrome", "phantomjs", "selenium"}},
	{CategoryHTTPClient, []string{"python-requests", "curl", "wget", "java", "go-http-client", "postman"}},
}

// Classify returns the category of a user agent, CategoryHuman when nothing matches
func Classify(userAgent string) Category {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return CategoryMissing
	}

	for _, sig := range signatures {
		for _, pattern := range sig.patterns {
			if strings.Contains(ua, pattern) {
				return sig.category
			}
		}
	}

	return CategoryHuman
}

// IsBotUserAgent reports whether the user agent belongs to anything but a person
func IsBotUserAgent(userAgent string) bool {
	return Classify(userAgent) != CategoryHuman
}
