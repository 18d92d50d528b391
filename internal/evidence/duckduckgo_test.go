package evidence

import "testing"

func TestDecodeRedirectURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"plain url passes through",
			"https://example.com/article",
			"https://example.com/article",
		},
		{
			"redirect with uddg",
			"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Farticle&rut=abc",
			"https://example.com/article",
		},
		{
			"redirect without trailing params",
			"/l/?uddg=https%3A%2F%2Fnews.example%2Fstory",
			"https://news.example/story",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeRedirectURL(tt.input); got != tt.want {
				t.Errorf("decodeRedirectURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.example.com/path", "example.com"},
		{"https://news.example.org/article", "news.example.org"},
		{"not a url at all", "Web"},
		{"", "Web"},
	}

	for _, tt := range tests {
		if got := displayDomain(tt.input); got != tt.want {
			t.Errorf("displayDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
