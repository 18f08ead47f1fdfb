package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/api/http/httpx"
	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/content/service"
)

// resource serves one id-keyed collection. key is the envelope field used in
// get/update payloads; an empty key means the payload is a bare array.
type resource[T any] struct {
	coll *service.Collection[T]
	key  string
	log  *slog.Logger
}

func (r resource[T]) register(rg gin.IRouter, path string, deletable bool) {
	rg.POST(path, r.create)
	rg.PUT(path+"/:id", r.update)
	if deletable {
		rg.DELETE(path+"/:id", r.delete)
	}
}

func (r resource[T]) list(c *gin.Context) {
	items, err := r.coll.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	if r.key == "" {
		c.JSON(http.StatusOK, items)
		return
	}
	c.JSON(http.StatusOK, gin.H{r.key: items})
}

func (r resource[T]) replaceAll(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	elems, err := listPayload(raw, r.key)
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	items, err := domain.DecodeBatch[T](elems)
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	if err := r.coll.ReplaceAll(c.Request.Context(), items); err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	httpx.Success(c)
}

func (r resource[T]) create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	item, err := domain.Decode[T](raw)
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	created, err := r.coll.Create(c.Request.Context(), item)
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r resource[T]) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	updated, err := r.coll.Update(c.Request.Context(), id, raw)
	if err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r resource[T]) delete(c *gin.Context) {
	if err := r.coll.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		httpx.Error(c, r.log, err)
		return
	}
	httpx.Success(c)
}

// listPayload extracts the element list from a batch body: either a bare
// array (key == "") or {key: [...]}.
func listPayload(raw []byte, key string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if key == "" {
		if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
			return nil, domain.Invalid("", "body must be a JSON array")
		}
		return elems, nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return nil, domain.Invalid("", "body must be a JSON object")
	}
	field, ok := body[key]
	if !ok {
		return nil, domain.Invalid(key, "is required")
	}
	if err := json.Unmarshal(field, &elems); err != nil || elems == nil {
		return nil, domain.Invalid(key, "must be an array")
	}
	return elems, nil
}
