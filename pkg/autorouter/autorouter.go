package autorouter

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/pkg/logger"
)

// Middleware represents middleware function signature
type Middleware func(http.Handler) http.Handler

// RegistrationOptions configures how handlers are registered
type RegistrationOptions struct {
	Prefix       string         // URL prefix (e.g., "/api/v1/")
	MethodPrefix string         // Method prefix (e.g., "enclosure." -> "enclosure.Open")
	Middleware   []Middleware   // Middleware chain to apply
	Logger       *logger.Logger // Receives one debug line per registration; nil is silent
}

// Route describes one registered endpoint
type Route struct {
	Path       string
	MethodName string
	Middleware int
}

// AutoRouter registers every handler-shaped method of a struct on a mux
type AutoRouter struct {
	mux     *http.ServeMux
	options RegistrationOptions
	routes  []Route
}

// NewAutoRouter creates a new auto router
func NewAutoRouter(mux *http.ServeMux, options RegistrationOptions) *AutoRouter {
	if options.Logger == nil {
		options.Logger = logger.NewNop()
	}
	return &AutoRouter{
		mux:     mux,
		options: options,
	}
}

var (
	responseWriterType = reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	requestType        = reflect.TypeOf((*http.Request)(nil))
	errorType          = reflect.TypeOf((*error)(nil)).Elem()
)

// RegisterHandlers registers every exported method of handler with the signature
// func(http.ResponseWriter, *http.Request) [error]. Methods named Handle* are skipped.
func (ar *AutoRouter) RegisterHandlers(handler interface{}, extra ...Middleware) error {
	value := reflect.ValueOf(handler)
	typ := value.Type()
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("handler must be a struct or pointer to struct, got %s", typ.Kind())
	}

	chain := append(append([]Middleware{}, extra...), ar.options.Middleware...)

	registered := 0
	for i := 0; i < value.NumMethod(); i++ {
		name := value.Type().Method(i).Name
		method := value.Method(i)

		if strings.HasPrefix(name, "Handle") || !isHandlerFunc(method.Type()) {
			continue
		}

		ar.register(ar.buildURLPath(name), name, method, chain)
		registered++
	}

	if registered == 0 {
		return fmt.Errorf("%s has no handler methods", typ.Name())
	}
	return nil
}

// RegisterHandlersWithAuth registers handlers behind authMiddleware
func (ar *AutoRouter) RegisterHandlersWithAuth(handler interface{}, authMiddleware Middleware) error {
	return ar.RegisterHandlers(handler, authMiddleware)
}

// RegisterSingleMethod registers one method under a custom path
func (ar *AutoRouter) RegisterSingleMethod(handler interface{}, methodName string, customPath string) error {
	method := reflect.ValueOf(handler).MethodByName(methodName)
	if !method.IsValid() {
		return fmt.Errorf("method %s not found", methodName)
	}
	if !isHandlerFunc(method.Type()) {
		return fmt.Errorf("method %s does not match handler signature", methodName)
	}

	ar.register(ar.options.Prefix+customPath, methodName, method, ar.options.Middleware)
	return nil
}

// Routes returns the endpoints registered so far in registration order
func (ar *AutoRouter) Routes() []Route {
	out := make([]Route, len(ar.routes))
	copy(out, ar.routes)
	return out
}

func (ar *AutoRouter) register(path, methodName string, method reflect.Value, chain []Middleware) {
	var h http.Handler = handlerFor(method)
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	ar.mux.Handle(path, h)
	ar.routes = append(ar.routes, Route{Path: path, MethodName: methodName, Middleware: len(chain)})

	ar.options.Logger.Debug("Auto-registered",
		zap.String("path", path),
		zap.String("method", methodName),
		zap.Int("middleware", len(chain)))
}

// isHandlerFunc reports whether t is func(http.ResponseWriter, *http.Request) with at most an error result
func isHandlerFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 2 || t.NumOut() > 1 {
		return false
	}
	if t.NumOut() == 1 && !t.Out(0).Implements(errorType) {
		return false
	}
	return t.In(0).Implements(responseWriterType) && t.In(1) == requestType
}

func (ar *AutoRouter) buildURLPath(methodName string) string {
	if ar.options.MethodPrefix != "" {
		return ar.options.Prefix + ar.options.MethodPrefix + methodName
	}
	return ar.options.Prefix + strings.ToLower(methodName)
}

func handlerFor(method reflect.Value) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := method.Call([]reflect.Value{reflect.ValueOf(w), reflect.ValueOf(r)})
		if len(results) == 1 && !results[0].IsNil() {
			http.Error(w, results[0].Interface().(error).Error(), http.StatusInternalServerError)
		}
	}
}
