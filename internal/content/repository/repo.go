package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/clubsite/site-api/internal/documents"
)

// ListRepository reads and writes the entity list of one collection document.
type ListRepository[T any] struct {
	docs  *documents.Repository
	shape *documents.Shape
	key   func(T) string
	// declared holds the JSON names T knows about; anything else on a stored
	// element is carried over on write.
	declared map[string]bool
}

func NewList[T any](docs *documents.Repository, shape *documents.Shape, key func(T) string) *ListRepository[T] {
	return &ListRepository[T]{
		docs:     docs,
		shape:    shape,
		key:      key,
		declared: jsonFields(reflect.TypeFor[T]()),
	}
}

func (r *ListRepository[T]) Shape() *documents.Shape { return r.shape }

// List returns the entities in stored order.
func (r *ListRepository[T]) List(ctx context.Context) ([]T, error) {
	doc, err := r.docs.Load(ctx, r.shape)
	if err != nil {
		return nil, err
	}
	items, err := documents.Into[[]T](r.listOf(doc))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.shape.Name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Replace swaps the entity list, keeping any sibling fields of the envelope.
// Fields of a stored element that T does not declare survive when an item
// with the same key is written back.
func (r *ListRepository[T]) Replace(ctx context.Context, items []T) error {
	return r.ReplaceWith(ctx, items, nil)
}

// ReplaceWith is Replace that also sets envelope fields beside the list in
// the same write. Bare-array documents have no envelope to set them on.
func (r *ListRepository[T]) ReplaceWith(ctx context.Context, items []T, siblings map[string]any) error {
	if r.shape.Key == "" && len(siblings) > 0 {
		return fmt.Errorf("%s is a bare list and has no envelope fields", r.shape.Name)
	}
	doc, err := r.docs.Load(ctx, r.shape)
	if err != nil {
		return err
	}
	extras, err := r.extrasByKey(r.listOf(doc))
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		el, err := documents.Into[map[string]any](it)
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.shape.Name, err)
		}
		for k, v := range extras[r.key(it)] {
			el[k] = v
		}
		out = append(out, el)
	}

	if r.shape.Key == "" {
		return r.docs.Save(ctx, r.shape, out)
	}
	obj := doc.(map[string]any)
	for k, v := range siblings {
		obj[k] = v
	}
	obj[r.shape.Key] = out
	return r.docs.Save(ctx, r.shape, obj)
}

// extrasByKey collects the undeclared fields of every stored element.
func (r *ListRepository[T]) extrasByKey(list any) (map[string]map[string]any, error) {
	elems, _ := list.([]any)
	out := make(map[string]map[string]any, len(elems))
	for _, e := range elems {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		var extra map[string]any
		for k, v := range obj {
			if !r.declared[k] {
				if extra == nil {
					extra = map[string]any{}
				}
				extra[k] = v
			}
		}
		if extra == nil {
			continue
		}
		typed, err := documents.Into[T](obj)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.shape.Name, err)
		}
		if key := r.key(typed); key != "" {
			out[key] = extra
		}
	}
	return out, nil
}

func (r *ListRepository[T]) listOf(doc any) any {
	if r.shape.Key == "" {
		return doc
	}
	return doc.(map[string]any)[r.shape.Key]
}

func jsonFields(t reflect.Type) map[string]bool {
	out := map[string]bool{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			for k := range jsonFields(f.Type) {
				out[k] = true
			}
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = true
	}
	return out
}

// ObjectRepository reads and writes a singleton document as one typed value.
type ObjectRepository[T any] struct {
	docs  *documents.Repository
	shape *documents.Shape
}

func NewObject[T any](docs *documents.Repository, shape *documents.Shape) *ObjectRepository[T] {
	return &ObjectRepository[T]{docs: docs, shape: shape}
}

func (r *ObjectRepository[T]) Get(ctx context.Context) (T, error) {
	var zero T
	doc, err := r.docs.Load(ctx, r.shape)
	if err != nil {
		return zero, err
	}
	out, err := documents.Into[T](doc)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", r.shape.Name, err)
	}
	return out, nil
}

func (r *ObjectRepository[T]) Put(ctx context.Context, v T) error {
	return r.docs.Save(ctx, r.shape, v)
}

// TeamRepository manages the team photo that sits beside the member list.
type TeamRepository struct {
	docs  *documents.Repository
	shape *documents.Shape
}

func NewTeam(docs *documents.Repository) *TeamRepository {
	return &TeamRepository{docs: docs, shape: documents.Team}
}

func (r *TeamRepository) PhotoURL(ctx context.Context) (*string, error) {
	doc, err := r.docs.Load(ctx, r.shape)
	if err != nil {
		return nil, err
	}
	if s, ok := doc.(map[string]any)["teamPhotoUrl"].(string); ok {
		return &s, nil
	}
	return nil, nil
}

func (r *TeamRepository) SetPhotoURL(ctx context.Context, url *string) error {
	doc, err := r.docs.Load(ctx, r.shape)
	if err != nil {
		return err
	}
	obj := doc.(map[string]any)
	if url == nil {
		obj["teamPhotoUrl"] = nil
	} else {
		obj["teamPhotoUrl"] = *url
	}
	return r.docs.Save(ctx, r.shape, obj)
}
