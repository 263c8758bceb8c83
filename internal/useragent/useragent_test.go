package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		device    string
		browser   string
	}{
		{
			name:      "chrome on windows 10",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			device:    "Windows 10",
			browser:   "Chrome",
		},
		{
			name:      "safari on mac",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			device:    "macOS",
			browser:   "Safari",
		},
		{
			name:      "edge on windows",
			userAgent: "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 Edg/120.0",
			device:    "Windows 10",
			browser:   "Edge",
		},
		{
			name:      "firefox on linux",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			device:    "Linux",
			browser:   "Firefox",
		},
		{
			name:      "android chrome",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36",
			device:    "Android",
			browser:   "Chrome",
		},
		{
			name:      "empty",
			userAgent: "",
			device:    "Unknown Device",
			browser:   "Unknown Browser",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.userAgent)
			assert.Equal(t, tt.device, info.Device)
			assert.Equal(t, tt.browser, info.Browser)
		})
	}
}
