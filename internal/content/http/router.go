package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the read endpoints.
func (h *Handler) RegisterPublic(rg gin.IRouter) {
	rg.GET("/getTeamMembers", h.getTeam)
	rg.GET("/getPositions", h.positions.list)
	rg.GET("/getSponsors", h.sponsors.list)
	rg.GET("/getTutorials", h.tutorials.list)
	rg.GET("/getCalendarEvents", h.calendar.list)
	rg.GET("/getShopItems", h.shop.list)
	rg.GET("/getPastEvents", h.pastEvents.list)
	rg.GET("/getCourseLinks", h.getCourseLinks)
	rg.GET("/getFolderLinks", h.getFolderLinks)
	rg.GET("/getOfficeHours", h.getOfficeHours)
	rg.GET("/getConferenceConfig", h.getConference)
}

// RegisterAdmin attaches the write endpoints. Callers are expected to put
// them behind the admin session middleware.
func (h *Handler) RegisterAdmin(rg gin.IRouter) {
	rg.POST("/updateTeamMembers", h.updateTeam)
	rg.POST("/updatePositions", h.positions.replaceAll)
	rg.POST("/updateSponsors", h.sponsors.replaceAll)
	rg.POST("/updateTutorials", h.tutorials.replaceAll)
	rg.POST("/updateCalendarEvents", h.calendar.replaceAll)
	rg.POST("/updateShopItems", h.shop.replaceAll)
	rg.POST("/updatePastEvents", h.pastEvents.replaceAll)
	rg.POST("/updateOfficeHours", h.updateOfficeHours)
	rg.POST("/updateConferenceConfig", h.updateConference)
	rg.POST("/updateTeamPhoto", h.updateTeamPhoto)

	h.members.register(rg, "/teamMembers", true)
	h.positions.register(rg, "/positions", true)
	h.sponsors.register(rg, "/sponsors", true)
	h.tutorials.register(rg, "/tutorials", true)
	h.calendar.register(rg, "/calendarEvents", true)
	h.shop.register(rg, "/shopItems", true)
	h.pastEvents.register(rg, "/pastEvents", false)

	rg.POST("/courseLinks", h.upsertCourseLink)
	rg.DELETE("/courseLinks", h.deleteCourseLink)
	rg.POST("/folderLinks", h.upsertFolderLink)
	rg.DELETE("/folderLinks", h.deleteFolderLink)
}
