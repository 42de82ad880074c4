package lightmix

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// PageNode is one page in a mounted page tree.
type PageNode struct {
	Name        string
	Title       string
	Method      string
	Route       string
	Value       reflect.Value
	Props       *reflect.Method
	Config      *reflect.Method
	Components  map[string]*reflect.Method
	Middlewares *reflect.Method
	Parent      *PageNode
	Children    []*PageNode
}

// FullRoute returns the route of the node joined with the routes of its parents.
func (pn *PageNode) FullRoute() string {
	if pn.Parent == nil {
		return pn.Route
	}
	return JoinPattern(pn.Parent.FullRoute(), pn.Route)
}

// All iterates the tree depth first, starting with pn itself.
func (pn *PageNode) All() iter.Seq[*PageNode] {
	return func(yield func(*PageNode) bool) {
		walk(pn, yield)
	}
}

func walk(pn *PageNode, fn func(*PageNode) bool) bool {
	if !fn(pn) {
		return false
	}
	for _, child := range pn.Children {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

func (pn PageNode) String() string {
	var sb strings.Builder
	sb.WriteString("PageNode{")
	sb.WriteString("\n  name: " + pn.Name)
	sb.WriteString("\n  title: " + pn.Title)
	sb.WriteString("\n  method: " + pn.Method)
	sb.WriteString("\n  route: " + pn.Route)
	sb.WriteString("\n  props: " + formatMethod(pn.Props))
	sb.WriteString("\n  middlewares: " + formatMethod(pn.Middlewares))
	if len(pn.Components) == 0 {
		sb.WriteString("\n  components: []")
	}
	if pn.Value.IsValid() && pn.Value.Type().Implements(handlerType) {
		sb.WriteString("\n  is http.Handler: true")
	}
	for _, name := range slices.Sorted(maps.Keys(pn.Components)) {
		sb.WriteString("\n  component: " + name + " -> " + formatMethod(pn.Components[name]))
	}
	for i, child := range pn.Children {
		fmt.Fprintf(&sb, "\n  child %d:", i+1)
		childStr := strings.TrimRight(child.String(), "\n")
		for _, line := range strings.SplitAfter(childStr, "\n") {
			sb.WriteString("  " + line)
		}
	}
	sb.WriteString("\n}")
	return sb.String()
}

func formatMethod(method *reflect.Method) string {
	if method == nil || method.Func == (reflect.Value{}) {
		return "<nil>"
	}
	return fmt.Sprintf("%s.%s", method.Type.In(0).String(), method.Name)
}
