package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// rawSpec returns the embedded OpenAPI document as written.
func rawSpec() ([]byte, error) {
	return openapiSpec, nil
}

// GetSwagger parses and validates the embedded OpenAPI document. The result
// is cached; callers must not modify it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		swagger, swaggerErr = loader.LoadFromData(openapiSpec)
		if swaggerErr != nil {
			swaggerErr = fmt.Errorf("error loading OpenAPI spec: %w", swaggerErr)
			return
		}
		if err := swagger.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("invalid OpenAPI spec: %w", err)
		}
	})
	return swagger, swaggerErr
}

// validateRequests rejects requests that do not match the OpenAPI document
// with 400. Paths outside the document (metrics, the spec itself) pass
// through untouched.
func validateRequests(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	opts := &openapi3filter.Options{MultiError: true}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				// Unknown routes and methods are left to chi.
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    opts,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
