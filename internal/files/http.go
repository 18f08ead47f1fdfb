package files

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/api/http/httpx"
	"github.com/clubsite/site-api/internal/content/domain"
)

// formOverhead is the allowance for multipart headers on top of the file limit.
const formOverhead = 64 << 10

type Handler struct {
	svc      *Service
	maxBytes int64
	log      *slog.Logger
}

func NewHandler(svc *Service, maxBytes int64, log *slog.Logger) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes, log: log}
}

type pathReq struct {
	Path string `json:"path"`
}

// RegisterPublic attaches the tree listing under the API group.
func (h *Handler) RegisterPublic(rg gin.IRouter) {
	rg.GET("/resources", h.tree)
}

// RegisterAdmin attaches the upload and management endpoints.
func (h *Handler) RegisterAdmin(rg gin.IRouter) {
	rg.POST("/upload/teamPhoto", h.uploadTeamPhoto)
	rg.POST("/resources/upload", h.uploadResource)
	rg.POST("/resources/folder", h.createFolder)
	rg.DELETE("/resources", h.delete)
}

// RegisterDownload serves stored blobs at /files/*name.
func (h *Handler) RegisterDownload(r gin.IRouter) {
	r.GET("/files/*name", h.download)
	r.HEAD("/files/*name", h.download)
}

func (h *Handler) tree(c *gin.Context) {
	root, err := h.svc.Tree(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, root)
}

func (h *Handler) uploadTeamPhoto(c *gin.Context) {
	_, data, err := h.readUpload(c)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	url, err := h.svc.SaveTeamPhoto(c.Request.Context(), c.PostForm("id"), data)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) uploadResource(c *gin.Context) {
	filename, data, err := h.readUpload(c)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	node, err := h.svc.Upload(c.Request.Context(), c.PostForm("folder"), filename, data)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

func (h *Handler) createFolder(c *gin.Context) {
	var req pathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid JSON body", err.Error())
		return
	}
	node, err := h.svc.CreateFolder(c.Request.Context(), req.Path)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

func (h *Handler) delete(c *gin.Context) {
	var req pathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid JSON body", err.Error())
		return
	}
	if err := h.svc.Delete(c.Request.Context(), req.Path); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}

func (h *Handler) download(c *gin.Context) {
	data, contentType, err := h.svc.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, contentType, data)
}

// readUpload returns the multipart "file" field, enforcing the size limit.
func (h *Handler) readUpload(c *gin.Context) (string, []byte, error) {
	limit := h.maxBytes + formOverhead
	if c.Request.ContentLength > limit {
		return "", nil, &http.MaxBytesError{Limit: h.maxBytes}
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, domain.Invalid("file", "is required")
	}
	if fh.Size > h.maxBytes {
		return "", nil, &http.MaxBytesError{Limit: h.maxBytes}
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
