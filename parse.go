package lightmix

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"runtime"
	"slices"
	"strings"
)

type parseContext struct {
	root *PageNode
	args argRegistry
}

func parsePageTree(route string, page any, args ...any) (*parseContext, error) {
	pc := &parseContext{args: make(argRegistry)}
	for _, v := range args {
		if err := pc.args.addArg(v); err != nil {
			return nil, fmt.Errorf("error adding argument to registry: %w", err)
		}
	}
	pv := reflect.ValueOf(page)
	if !pv.IsValid() {
		return nil, fmt.Errorf("page is nil")
	}
	if pv.Kind() != reflect.Ptr {
		// methods with pointer receivers need an addressable value
		cp := reflect.New(pv.Type())
		cp.Elem().Set(pv)
		pv = cp
	}
	if pv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("page must be a struct, got %s", pv.Type())
	}
	topNode, err := pc.parsePageTree(route, "", pv)
	if err != nil {
		return nil, err
	}
	pc.root = topNode
	return pc, nil
}

func (p *parseContext) parsePageTree(route, fieldName string, pv reflect.Value) (*PageNode, error) {
	st, pt := pv.Type().Elem(), pv.Type()
	item := &PageNode{Value: pv, Name: cmp.Or(fieldName, st.Name())}
	item.Method, item.Route, item.Title = parseTag(route)

	for i := range st.NumField() {
		field := st.Field(i)
		route, ok := field.Tag.Lookup("route")
		if !ok {
			continue
		}
		typ := field.Type
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field %s.%s: page must be a struct, got %s", st.Name(), field.Name, typ)
		}
		childItem, err := p.parsePageTree(route, field.Name, reflect.New(typ))
		if err != nil {
			return nil, err
		}
		childItem.Parent = item
		item.Children = append(item.Children, childItem)
	}

	var initMethod *reflect.Method
	seen := make(map[string]bool)
	// value receiver methods show up as autogenerated wrappers on the pointer
	// type, so the value type is scanned first
	for _, t := range []reflect.Type{st, pt} {
		for i := range t.NumMethod() {
			method := t.Method(i)
			if seen[method.Name] || isPromotedMethod(&method) {
				continue
			}
			seen[method.Name] = true
			item.addMethod(&method, &initMethod)
		}
	}

	if initMethod != nil {
		res, err := p.callMethod(item, initMethod)
		if err != nil {
			return nil, fmt.Errorf("error calling Init method on %s: %w", item.Name, err)
		}
		if _, err := extractError(res); err != nil {
			return nil, fmt.Errorf("error calling Init method on %s: %w", item.Name, err)
		}
	}

	return item, nil
}

func (pn *PageNode) addMethod(method *reflect.Method, initMethod **reflect.Method) {
	if isComponent(method) {
		if pn.Components == nil {
			pn.Components = make(map[string]*reflect.Method)
		}
		pn.Components[method.Name] = method
		return
	}
	switch method.Name {
	case "Props":
		pn.Props = method
	case "PageConfig":
		pn.Config = method
	case "Middlewares":
		pn.Middlewares = method
	case "Init":
		*initMethod = method
	}
}

// callMethod calls method with the node value as receiver. Positional args are
// used while they fit the method parameters, the remaining parameters are
// filled from the args registry or with the node itself.
func (p *parseContext) callMethod(pn *PageNode, method *reflect.Method,
	args ...reflect.Value) ([]reflect.Value, error) {
	v := pn.Value
	receiver := method.Type.In(0)
	if receiver.Kind() != reflect.Ptr && v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if !v.Type().AssignableTo(receiver) {
		return nil, fmt.Errorf("method %s receiver type mismatch: expected %s, got %s",
			formatMethod(method), receiver.String(), v.Type().String())
	}
	in := make([]reflect.Value, method.Type.NumIn())
	in[0] = v
	pnv := reflect.ValueOf(pn)
	next := 0
	for i := 1; i < len(in); i++ {
		argType := method.Type.In(i)
		if next < len(args) && args[next].IsValid() && args[next].Type().AssignableTo(argType) {
			in[i] = args[next]
			next++
			continue
		}
		switch {
		case argType == pnv.Type():
			in[i] = pnv
		case argType == pnv.Type().Elem():
			in[i] = pnv.Elem()
		default:
			val, ok := p.args.getArg(argType)
			if !ok {
				return nil, fmt.Errorf("method %s requires argument of type %s, but not found",
					formatMethod(method), argType.String())
			}
			in[i] = val
		}
	}
	return method.Func.Call(in), nil
}

func (p *parseContext) callComponentMethod(pn *PageNode, method *reflect.Method,
	args ...reflect.Value) (component, error) {
	results, err := p.callMethod(pn, method, args...)
	if err != nil {
		return nil, fmt.Errorf("error calling component method %s: %w", formatMethod(method), err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("method %s must return a single result, got %d", formatMethod(method), len(results))
	}
	comp, ok := results[0].Interface().(component)
	if !ok {
		return nil, fmt.Errorf("method %s does not return value of type component", formatMethod(method))
	}
	return comp, nil
}

func (p *parseContext) urlFor(v any) (string, error) {
	if f, ok := v.(func(*PageNode) bool); ok {
		for node := range p.root.All() {
			if f(node) {
				return node.FullRoute(), nil
			}
		}
		return "", fmt.Errorf("urlfor: no page node matched")
	}
	ptv := pointerType(reflect.TypeOf(v))
	for node := range p.root.All() {
		if pointerType(node.Value.Type()) == ptv {
			return node.FullRoute(), nil
		}
	}
	return "", fmt.Errorf("urlfor: no page node found for %s", ptv.String())
}

func pointerType(v reflect.Type) reflect.Type {
	if v.Kind() == reflect.Ptr {
		return v
	}
	return reflect.PointerTo(v)
}

// parseTag splits a route tag into method, path and title:
//
//	"POST /login Sign in" -> "POST", "/login", "Sign in"
func parseTag(route string) (method, path, title string) {
	method = MethodAll
	parts := strings.Fields(route)
	if len(parts) == 0 {
		path = "/"
		return
	}
	if len(parts) == 1 {
		path = parts[0]
		return
	}
	if m := strings.ToUpper(parts[0]); slices.Contains(validMethod, m) {
		method = m
		path = parts[1]
		title = strings.Join(parts[2:], " ")
	} else {
		path = parts[0]
		title = strings.Join(parts[1:], " ")
	}
	return
}

// MethodAll marks a page that accepts any HTTP method.
const MethodAll = "ALL"

var validMethod = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
	MethodAll,
}

// component is satisfied by templ.Component.
type component interface {
	Render(context.Context, io.Writer) error
}

var componentType = reflect.TypeOf((*component)(nil)).Elem()

func isComponent(t *reflect.Method) bool {
	if t.Type.NumOut() != 1 {
		return false
	}
	return t.Type.Out(0).Implements(componentType)
}

func isPromotedMethod(method *reflect.Method) bool {
	// Check if the method is promoted from an embedded type
	// https://github.com/golang/go/issues/73883
	wPC := method.Func.Pointer()
	wFunc := runtime.FuncForPC(wPC)
	wFile, wLine := wFunc.FileLine(wPC)
	return wFile == "<autogenerated>" && wLine == 1
}
