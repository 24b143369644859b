package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

// DecodeRequestFunc extracts a typed request from the HTTP request.
type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

// EncodeResponseFunc writes the endpoint response to the client.
type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc glues decode -> endpoint -> encode into one handler,
// funneling every failure through the shared error encoder.
func MakeHandlerFunc(
	ep endpoint.Endpoint,
	dec DecodeRequestFunc,
	enc EncodeResponseFunc,
) http.HandlerFunc {
	return func(respWriter http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		request, err := dec(ctx, req)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		if err := enc(ctx, respWriter, response); err != nil {
			ErrorResponse(ctx, err, respWriter)
		}
	}
}

type binder[T any] interface {
	*T
	render.Binder
}

// DecodeRequest decodes a JSON body into T and runs its Bind validation.
func DecodeRequest[T any, PT binder[T]](_ context.Context, r *http.Request) (interface{}, error) {
	var request T

	ptr := PT(&request)
	if err := render.Bind(r, ptr); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	return ptr, nil
}
