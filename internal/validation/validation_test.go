package validation

import "testing"

func TestValidateKeyword(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    bool
	}{
		{"valid alphanumeric", "wiki2", true},
		{"valid with hyphen", "team-docs", true},
		{"valid with underscore", "on_call", true},
		{"single char", "r", true},
		{"empty string", "", false},
		{"too long", string(make([]byte, MaxKeywordLength+1)), false},
		{"contains space", "my link", false},
		{"contains dot", ".wiki", false},
		{"contains slash", "wiki/en", false},
		{"markup", "<b>", false},
		{"unicode", "日本語", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateKeyword(tt.keyword); got != tt.want {
				t.Errorf("ValidateKeyword(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeyword(t *testing.T) {
	if got := NormalizeKeyword("  Wiki "); got != "wiki" {
		t.Errorf("NormalizeKeyword = %q, want wiki", got)
	}
}

func TestParseKeywordPath(t *testing.T) {
	tests := []struct {
		segment  string
		keyword  string
		listPage bool
	}{
		{"wiki", "wiki", false},
		{"/wiki", "wiki", false},
		{".wiki", "wiki", true},
		{"/.Wiki", "wiki", true},
		{"wiki/", "wiki", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			keyword, listPage := ParseKeywordPath(tt.segment)
			if keyword != tt.keyword || listPage != tt.listPage {
				t.Errorf("ParseKeywordPath(%q) = (%q, %v), want (%q, %v)", tt.segment, keyword, listPage, tt.keyword, tt.listPage)
			}
		})
	}
}

func TestIsReservedKeyword(t *testing.T) {
	for _, kw := range []string{"keywords", "Metrics", "healthz", "readyz", "static"} {
		if !IsReservedKeyword(kw) {
			t.Errorf("IsReservedKeyword(%q) = false, want true", kw)
		}
	}
	for _, kw := range []string{"wiki", "api", "keyword"} {
		if IsReservedKeyword(kw) {
			t.Errorf("IsReservedKeyword(%q) = true, want false", kw)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://en.wikipedia.org", true, ""},
		{"valid http with path", "http://127.0.0.1/foo", true, ""},
		{"valid with placeholder path", "https://en.wikipedia.org/wiki/{subject}", true, ""},
		{"uppercase scheme", "HTTPS://example.com", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"no scheme", "www.reddit.com", false, "URL must use http:// or https:// scheme"},
		{"scheme only", "https://", false, "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if !valid && msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}
