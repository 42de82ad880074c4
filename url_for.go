package lightmix

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackielii/ctxkey"
)

var pcCtx = ctxkey.New[*parseContext]("lightmix.parseContext", nil)

func withPcCtx(pc *parseContext) MiddlewareFunc {
	return func(next http.Handler, node *PageNode) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := pcCtx.WithValue(r.Context(), pc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// URLFor returns the URL for a given page type. If args is provided, it'll replace
// the path segments. Supported format is similar to http.ServeMux
//
// If multiple page type matches are found, the first one is returned.
// In such situation, use a func(*PageNode) bool as page argument to match a specific page.
//
// Additionally, you can pass []any to page to join multiple path segments together.
// Strings will be joined as is. Example:
//
//	URLFor(ctx, []any{Page{}, "?foo={bar}"}, "bar", "baz")
func URLFor(ctx context.Context, page any, args ...any) (string, error) {
	pc := pcCtx.Value(ctx)
	if pc == nil {
		return "", errors.New("parse context not found in context")
	}

	var pattern string
	parts, ok := page.([]any)
	if !ok {
		parts = []any{page}
	}
	for _, page := range parts {
		if s, ok := page.(string); ok {
			pattern += s
			continue
		}
		p, err := pc.urlFor(page)
		if err != nil {
			return "", err
		}
		pattern += p
	}
	path, err := formatPathSegments(pattern, args...)
	if err != nil {
		return "", fmt.Errorf("urlfor: %w", err)
	}
	return strings.Replace(path, "{$}", "", 1), nil
}

// formatPathSegments fills the {param} segments of pattern. args are either a
// single map[string]any, name/value pairs, or one value per segment in order.
func formatPathSegments(pattern string, args ...any) (string, error) {
	segments, err := parseSegments(pattern)
	if err != nil {
		return pattern, fmt.Errorf("pattern %s: %w", pattern, err)
	}
	var params []int
	for i, segment := range segments {
		if segment.param {
			params = append(params, i)
		}
	}
	if len(params) == 0 {
		return pattern, nil
	}
	if len(args) == 0 {
		return pattern, fmt.Errorf("pattern %s: no arguments provided", pattern)
	}

	values, isMap := args[0].(map[string]any)
	if !isMap && len(args) != len(params) && len(args)%2 == 0 {
		values = make(map[string]any, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok {
				values = nil
				break
			}
			values[key] = args[i+1]
		}
	}
	switch {
	case values != nil:
		for _, idx := range params {
			v, ok := values[segments[idx].name]
			if !ok {
				return pattern, fmt.Errorf("pattern %s: argument %s not found in provided args", pattern, segments[idx].name)
			}
			segments[idx].value = fmt.Sprint(v)
		}
	case len(args) == len(params):
		for i, idx := range params {
			segments[idx].value = fmt.Sprint(args[i])
		}
	default:
		return pattern, fmt.Errorf("pattern %s: expected %d arguments, got %d", pattern, len(params), len(args))
	}

	var sb strings.Builder
	for _, segment := range segments {
		if segment.param {
			sb.WriteString(segment.value)
		} else {
			sb.WriteString(segment.name)
		}
	}
	return sb.String(), nil
}

type segment struct {
	name  string
	param bool
	value string
}

func parseSegments(pattern string) (segments []segment, err error) {
	rest := pattern
	for rest != "" {
		start := strings.Index(rest, "{")
		if start == -1 {
			segments = append(segments, segment{name: rest})
			break
		}
		if start > 0 {
			segments = append(segments, segment{name: rest[:start]})
		}
		rest = rest[start+1:] // move over the '{'
		end := strings.Index(rest, "}")
		if end == -1 {
			return nil, errors.New("unmatched {")
		}
		name := rest[:end]
		rest = rest[end+1:]
		if name == "$" { // {$} is kept and stripped by URLFor
			segments = append(segments, segment{name: "{$}"})
			continue
		}
		name = strings.TrimSuffix(name, "...")
		segments = append(segments, segment{name: name, param: true})
	}
	return segments, nil
}
