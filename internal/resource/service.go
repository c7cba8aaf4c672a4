// Package resource holds the generic remote service and the list and form
// controllers shared by every resource type.
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/rs/zerolog/log"
)

// Item is the constraint of the list and form controllers: a pointer to a
// resource, compared by reference.
type Item interface {
	comparable
	domain.Resource
}

// Remote is the set of remote operations of one resource type
type Remote[T domain.Resource] interface {
	GetByID(ctx context.Context, id int32) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, resource T) (T, error)
	Update(ctx context.Context, resource T) (T, error)
	Delete(ctx context.Context, id int32) error
}

// Doer performs one JSON request against the REST API
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Service maps the REST endpoints under one base path into T
type Service[T domain.Resource] struct {
	client Doer
	path   string
	newFn  func() T
}

// NewService creates a Service. newFn returns the zero T that the JSON
// payload is decoded into; T must therefore be a pointer type. Defaults set
// by newFn would survive fields the response omits.
func NewService[T domain.Resource](client Doer, path string, newFn func() T) *Service[T] {
	return &Service[T]{
		client: client,
		path:   strings.Trim(path, "/"),
		newFn:  newFn,
	}
}

// Path returns the base path of the resource
func (s *Service[T]) Path() string {
	return s.path
}

// GetByID handles GET base/{id}
func (s *Service[T]) GetByID(ctx context.Context, id int32) (T, error) {
	resource := s.newFn()
	if err := s.client.Do(ctx, http.MethodGet, s.itemPath(id), nil, resource); err != nil {
		var zero T
		return zero, s.handleError("get", err)
	}
	return resource, nil
}

// GetAll handles GET base. The result is in server order, unpaginated.
func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	var raw []json.RawMessage
	if err := s.client.Do(ctx, http.MethodGet, s.path, nil, &raw); err != nil {
		return nil, s.handleError("list", err)
	}

	resources := make([]T, 0, len(raw))
	for _, element := range raw {
		resource := s.newFn()
		if err := json.Unmarshal(element, resource); err != nil {
			return nil, s.handleError("list", fmt.Errorf("decode %s element: %w", s.path, err))
		}
		resources = append(resources, resource)
	}
	return resources, nil
}

// Create handles POST base and returns the server representation, which
// carries the assigned id.
func (s *Service[T]) Create(ctx context.Context, resource T) (T, error) {
	created := s.newFn()
	if err := s.client.Do(ctx, http.MethodPost, s.path, resource, created); err != nil {
		var zero T
		return zero, s.handleError("create", err)
	}
	if _, ok := created.Identity(); !ok {
		var zero T
		return zero, s.handleError("create", fmt.Errorf("create %s: response carries no id: %w", s.path, domain.ErrResourceNotPersisted))
	}
	return created, nil
}

// Update handles PUT base/{id}. The response body is ignored and the input
// is returned as is.
func (s *Service[T]) Update(ctx context.Context, resource T) (T, error) {
	id, ok := resource.Identity()
	if !ok {
		var zero T
		return zero, s.handleError("update", domain.ErrResourceNotPersisted)
	}
	if err := s.client.Do(ctx, http.MethodPut, s.itemPath(id), resource, nil); err != nil {
		var zero T
		return zero, s.handleError("update", err)
	}
	return resource, nil
}

// Delete handles DELETE base/{id}
func (s *Service[T]) Delete(ctx context.Context, id int32) error {
	if err := s.client.Do(ctx, http.MethodDelete, s.itemPath(id), nil, nil); err != nil {
		return s.handleError("delete", err)
	}
	return nil
}

func (s *Service[T]) itemPath(id int32) string {
	return s.path + "/" + strconv.FormatInt(int64(id), 10)
}

// handleError is the single place where failed remote calls are logged
func (s *Service[T]) handleError(operation string, err error) error {
	log.Error().Err(err).Str("resource", s.path).Str("operation", operation).Msg("Resource request failed")
	return err
}
