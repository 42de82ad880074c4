package lightmix

import (
	"fmt"
	"strings"
)

// PrintRoutes lists the routes of a page tree, one per line:
//
//	GET    /{$}                 Home
//	POST   /counter/{id}/up
func PrintRoutes(route string, page any, args ...any) (string, error) {
	pc, err := parsePageTree(route, page, args...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for node := range pc.root.All() {
		if len(node.Components) == 0 && !node.Value.Type().Implements(handlerType) &&
			!node.Value.Type().Implements(errHandlerType) {
			continue
		}
		fmt.Fprintf(&sb, "%-6s %-20s %s\n", node.Method, node.FullRoute(), node.Title)
	}
	return sb.String(), nil
}
