package useragent

import "strings"

// Info is the device/browser descriptor stored on a session so a user can
// recognize their own logins in the session list.
type Info struct {
	Device  string
	Browser string
}

func Parse(userAgent string) Info {
	if userAgent == "" {
		return Info{Device: "Unknown Device", Browser: "Unknown Browser"}
	}

	ua := strings.ToLower(userAgent)

	device := "Unknown Device"
	switch {
	case strings.Contains(ua, "windows nt 10"):
		device = "Windows 10"
	case strings.Contains(ua, "windows nt 11"):
		device = "Windows 11"
	case strings.Contains(ua, "windows"):
		device = "Windows"
	case strings.Contains(ua, "mac os x"):
		device = "macOS"
	case strings.Contains(ua, "android"):
		device = "Android"
	case strings.Contains(ua, "iphone"):
		device = "iPhone"
	case strings.Contains(ua, "ipad"):
		device = "iPad"
	case strings.Contains(ua, "linux"):
		device = "Linux"
	}

	browser := "Unknown Browser"
	switch {
	case strings.Contains(ua, "edg/"):
		browser = "Edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		browser = "Opera"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	}

	return Info{Device: device, Browser: browser}
}
