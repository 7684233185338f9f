package autorouter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keeperHandler struct {
	name string
}

func (h *keeperHandler) Feed(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("fed by " + h.name))
}

func (h *keeperHandler) Treat(w http.ResponseWriter, r *http.Request) error {
	return errors.New("no vet on duty")
}

func (h *keeperHandler) HandleSomething(w http.ResponseWriter, r *http.Request) {}

func (h *keeperHandler) Shift() string { return "Morning" }

func (h *keeperHandler) rest(w http.ResponseWriter, r *http.Request) {}

type emptyHandler struct{}

func (emptyHandler) Name() string { return "empty" }

func serve(mux *http.ServeMux, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()
	router := NewAutoRouter(mux, RegistrationOptions{Prefix: "/api/v1/", MethodPrefix: "care."})

	require.NoError(t, router.RegisterHandlers(&keeperHandler{name: "Mostafa"}))

	routes := router.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/api/v1/care.Feed", routes[0].Path)
	assert.Equal(t, "/api/v1/care.Treat", routes[1].Path)

	w := serve(mux, "/api/v1/care.Feed")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fed by Mostafa", w.Body.String())

	w = serve(mux, "/api/v1/care.Treat")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "no vet on duty")

	assert.Equal(t, http.StatusNotFound, serve(mux, "/api/v1/care.HandleSomething").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, "/api/v1/care.Shift").Code)
}

func TestRegisterHandlers_LowercasesWithoutMethodPrefix(t *testing.T) {
	mux := http.NewServeMux()
	router := NewAutoRouter(mux, RegistrationOptions{Prefix: "/"})

	require.NoError(t, router.RegisterHandlers(&keeperHandler{name: "x"}))
	assert.Equal(t, http.StatusOK, serve(mux, "/feed").Code)
}

func TestRegisterHandlers_Rejects(t *testing.T) {
	router := NewAutoRouter(http.NewServeMux(), RegistrationOptions{Prefix: "/"})

	assert.Error(t, router.RegisterHandlers(42))
	assert.Error(t, router.RegisterHandlers(emptyHandler{}))
	assert.Empty(t, router.Routes())
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux := http.NewServeMux()
	router := NewAutoRouter(mux, RegistrationOptions{
		Prefix:       "/api/v1/",
		MethodPrefix: "care.",
		Middleware:   []Middleware{tag("shared")},
	})
	require.NoError(t, router.RegisterHandlersWithAuth(&keeperHandler{name: "x"}, tag("auth")))

	serve(mux, "/api/v1/care.Feed")
	assert.Equal(t, []string{"auth", "shared"}, order)
	assert.Equal(t, 2, router.Routes()[0].Middleware)
}

func TestRegisterHandlersWithAuth(t *testing.T) {
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer keeper" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	mux := http.NewServeMux()
	router := NewAutoRouter(mux, RegistrationOptions{Prefix: "/api/v1/", MethodPrefix: "care."})
	require.NoError(t, router.RegisterHandlersWithAuth(&keeperHandler{name: "x"}, auth))

	assert.Equal(t, http.StatusUnauthorized, serve(mux, "/api/v1/care.Feed").Code)
	assert.Equal(t, http.StatusOK, serve(mux, "/api/v1/care.Feed", "Authorization", "Bearer keeper").Code)
}

func TestRegisterSingleMethod(t *testing.T) {
	mux := http.NewServeMux()
	router := NewAutoRouter(mux, RegistrationOptions{Prefix: "/api/v1/"})

	require.NoError(t, router.RegisterSingleMethod(&keeperHandler{name: "single"}, "Feed", "feeding"))
	assert.Equal(t, "fed by single", serve(mux, "/api/v1/feeding").Body.String())

	assert.Error(t, router.RegisterSingleMethod(&keeperHandler{}, "Missing", "x"))
	assert.Error(t, router.RegisterSingleMethod(&keeperHandler{}, "Shift", "y"))
}
