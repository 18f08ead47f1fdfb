package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/api/http/httpx"
	"github.com/clubsite/site-api/internal/content/domain"
)

func (h *Handler) getTeam(c *gin.Context) {
	ctx := c.Request.Context()
	members, err := h.site.Members.List(ctx)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	photo, err := h.site.Team.PhotoURL(ctx)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teamMembers": members, "teamPhotoUrl": photo})
}

// updateTeam replaces the roster. A teamPhotoUrl field in the same body, when
// present, replaces the photo as well.
func (h *Handler) updateTeam(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	elems, err := listPayload(raw, "teamMembers")
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	members, err := domain.DecodeBatch[domain.Member](elems)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}

	var body struct {
		TeamPhotoURL json.RawMessage `json:"teamPhotoUrl"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		httpx.Error(c, h.log, domain.Invalid("", "body must be a JSON object"))
		return
	}
	var photo *domain.TeamPhoto
	if body.TeamPhotoURL != nil {
		photo = &domain.TeamPhoto{}
		if err := json.Unmarshal(body.TeamPhotoURL, &photo.TeamPhotoURL); err != nil {
			httpx.Error(c, h.log, domain.Invalid("teamPhotoUrl", "must be a string or null"))
			return
		}
	}

	if err := h.site.ReplaceTeam(c.Request.Context(), members, photo); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}

func (h *Handler) updateTeamPhoto(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.BadRequest(c, "invalid JSON body", err.Error())
		return
	}
	field, ok := body["teamPhotoUrl"]
	if !ok {
		httpx.Error(c, h.log, domain.Invalid("teamPhotoUrl", "is required"))
		return
	}
	var req teamPhotoReq
	if err := json.Unmarshal(field, &req.TeamPhotoURL); err != nil {
		httpx.Error(c, h.log, domain.Invalid("teamPhotoUrl", "must be a string or null"))
		return
	}
	if err := h.site.Team.SetPhotoURL(c.Request.Context(), req.TeamPhotoURL); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}

func (h *Handler) getOfficeHours(c *gin.Context) {
	oh, err := h.site.OfficeHours.Get(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, oh)
}

func (h *Handler) updateOfficeHours(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	oh, err := domain.Decode[domain.OfficeHours](raw)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	if _, err := h.site.OfficeHours.Put(c.Request.Context(), oh); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}

func (h *Handler) getConference(c *gin.Context) {
	cfg, err := h.site.Conference.Get(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) updateConference(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	cfg, err := domain.Decode[domain.ConferenceConfig](raw)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	if err := h.site.Conference.Put(c.Request.Context(), cfg); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}

func (h *Handler) getCourseLinks(c *gin.Context) {
	links, err := h.site.CourseLinks.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h *Handler) getFolderLinks(c *gin.Context) {
	links, err := h.site.FolderLinks.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h *Handler) upsertCourseLink(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	link, err := domain.Decode[domain.CourseLink](raw)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	saved, err := h.site.CourseLinks.Create(c.Request.Context(), link)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) deleteCourseLink(c *gin.Context) {
	var req courseLinkKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid JSON body", err.Error())
		return
	}
	if strings.TrimSpace(req.CourseCode) == "" {
		httpx.Error(c, h.log, domain.Invalid("courseCode", "is required"))
		return
	}
	key := domain.CourseLinkKey(domain.CourseLink{CourseCode: req.CourseCode})
	if err := h.site.CourseLinks.Delete(c.Request.Context(), key); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}

func (h *Handler) upsertFolderLink(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	link, err := domain.Decode[domain.FolderLink](raw)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	saved, err := h.site.FolderLinks.Create(c.Request.Context(), link)
	if err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) deleteFolderLink(c *gin.Context) {
	var req folderLinkKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid JSON body", err.Error())
		return
	}
	switch {
	case strings.TrimSpace(req.CourseCode) == "":
		httpx.Error(c, h.log, domain.Invalid("courseCode", "is required"))
		return
	case strings.TrimSpace(req.FolderID) == "":
		httpx.Error(c, h.log, domain.Invalid("folderId", "is required"))
		return
	}
	key := domain.FolderLinkKey(domain.FolderLink{CourseCode: req.CourseCode, FolderID: req.FolderID})
	if err := h.site.FolderLinks.Delete(c.Request.Context(), key); err != nil {
		httpx.Error(c, h.log, err)
		return
	}
	httpx.Success(c)
}
