package lightmix

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_mixedCase(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		s    string
		want string
	}{
		{
			name: "Empty string",
			s:    "",
			want: "",
		},
		{
			name: "Single word",
			s:    "hello",
			want: "Hello",
		},
		{
			name: "Hyphenated words",
			s:    "hello-world",
			want: "HelloWorld",
		},
		{
			name: "Mixed case with hyphens",
			s:    "hello-World",
			want: "HelloWorld",
		},
		{
			name: "Selector prefix",
			s:    "#heading-count",
			want: "HeadingCount",
		},
		{
			name: "Doubled hyphen",
			s:    "a--b",
			want: "AB",
		},
		{
			name: "No hyphens, just spaces",
			s:    "hello world",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mixedCase(tt.s)
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("mixedCase() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestHTMXPageConfig(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "plain request", want: "Page"},
		{name: "target without htmx", headers: map[string]string{"HX-Target": "content"}, want: "Page"},
		{name: "htmx without target", headers: map[string]string{"HX-Request": "true"}, want: "Page"},
		{name: "htmx with target", headers: map[string]string{"HX-Request": "true", "HX-Target": "heading-count"}, want: "HeadingCount"},
		{name: "htmx with bad target", headers: map[string]string{"HX-Request": "true", "HX-Target": "a b"}, want: "Page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			got, err := HTMXPageConfig(r)
			if err != nil {
				t.Fatalf("HTMXPageConfig() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HTMXPageConfig() = %q, want %q", got, tt.want)
			}
		})
	}
}
