package botdetection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      Category
	}{
		{"chrome", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", CategoryHuman},
		{"firefox", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0", CategoryHuman},
		{"iphone mail", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148", CategoryHuman},
		{"empty", "", CategoryMissing},
		{"whitespace", "   ", CategoryMissing},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", CategoryCrawler},
		{"link checker", "W3C-checklink/4.81 libwww-perl/6.05 LinkCheck", CategoryCrawler},
		{"microsoft safelinks", "Mozilla/5.0 SafeLinks/1.0", CategoryMailSecurity},
		{"proofpoint", "Proofpoint URL Defense", CategoryMailSecurity},
		{"security scanner wins over bot", "SecurityScanner Bot/2.0", CategoryMailSecurity},
		{"headless chrome", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) HeadlessChrome/120.0.0.0 Safari/537.36", CategoryHeadless},
		{"curl", "curl/8.4.0", CategoryHTTPClient},
		{"go client", "Go-http-client/1.1", CategoryHTTPClient},
		{"python", "python-requests/2.31.0", CategoryHTTPClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.userAgent))
			assert.Equal(t, tt.want != CategoryHuman, IsBotUserAgent(tt.userAgent))
		})
	}
}
