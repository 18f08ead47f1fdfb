package http

import (
	"log/slog"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/content/service"
)

// Handler bundles the dependencies for the content endpoints.
type Handler struct {
	site *service.Site
	log  *slog.Logger

	members    resource[domain.Member]
	positions  resource[domain.Position]
	sponsors   resource[domain.Sponsor]
	tutorials  resource[domain.Tutorial]
	calendar   resource[domain.CalendarEvent]
	shop       resource[domain.ShopItem]
	pastEvents resource[domain.PastEvent]
}

func New(site *service.Site, log *slog.Logger) *Handler {
	return &Handler{
		site:       site,
		log:        log,
		members:    resource[domain.Member]{coll: site.Members, key: "teamMembers", log: log},
		positions:  resource[domain.Position]{coll: site.Positions, key: "positions", log: log},
		sponsors:   resource[domain.Sponsor]{coll: site.Sponsors, log: log},
		tutorials:  resource[domain.Tutorial]{coll: site.Tutorials, key: "tutorials", log: log},
		calendar:   resource[domain.CalendarEvent]{coll: site.Calendar, key: "events", log: log},
		shop:       resource[domain.ShopItem]{coll: site.Shop, key: "items", log: log},
		pastEvents: resource[domain.PastEvent]{coll: site.PastEvents, key: "events", log: log},
	}
}

type teamPhotoReq struct {
	TeamPhotoURL *string `json:"teamPhotoUrl"`
}

type courseLinkKeyReq struct {
	CourseCode string `json:"courseCode"`
}

type folderLinkKeyReq struct {
	CourseCode string `json:"courseCode"`
	FolderID   string `json:"folderId"`
}
