package lightmix

import (
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
)

// HTMXPageConfig is a page configuration function designed for HTMX integration.
// It selects the component method from the HX-Target header.
//
// When an HTMX request is detected (via HX-Request header), it converts the HX-Target
// value to a method name. For example:
//   - HX-Target: "content" -> calls Content() method
//   - HX-Target: "heading-count" -> calls HeadingCount() method
//   - No HX-Target or non-HTMX request -> calls Page() method
//
// Use it with WithDefaultPageConfig to enable partial rendering across all pages:
//
//	sp := lightmix.New(
//	    lightmix.WithDefaultPageConfig(lightmix.HTMXPageConfig),
//	)
func HTMXPageConfig(r *http.Request) (string, error) {
	if htmx.IsHTMX(r) {
		if target, ok := htmx.GetTarget(r); ok && target != "" {
			if name := mixedCase(target); name != "" {
				return name, nil
			}
		}
	}
	return "Page", nil
}

// mixedCase turns an element id into a method name: "heading-count" -> "HeadingCount".
// Ids containing spaces can't be targets and yield "".
func mixedCase(s string) string {
	if s == "" || strings.Contains(s, " ") {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(s, "#"), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}
