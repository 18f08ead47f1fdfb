package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/content/repository"
	"github.com/clubsite/site-api/internal/documents"
)

// Site bundles the services for every content collection.
type Site struct {
	Members     *Collection[domain.Member]
	Positions   *Collection[domain.Position]
	Sponsors    *Collection[domain.Sponsor]
	Tutorials   *Collection[domain.Tutorial]
	Calendar    *Collection[domain.CalendarEvent]
	Shop        *Collection[domain.ShopItem]
	PastEvents  *Collection[domain.PastEvent]
	CourseLinks *Collection[domain.CourseLink]
	FolderLinks *Collection[domain.FolderLink]

	Team        *TeamService
	OfficeHours *OfficeHoursService
	Conference  *ConferenceService
}

func NewSite(docs *documents.Repository, log *slog.Logger) *Site {
	return &Site{
		Members: NewCollection(repository.NewList(docs, documents.Team, domain.MemberKey), Spec[domain.Member]{
			Name: "team member", Key: domain.MemberKey, SetID: func(m *domain.Member, id string) { m.ID = id },
		}, log),
		Positions: NewCollection(repository.NewList(docs, documents.Positions, domain.PositionKey), Spec[domain.Position]{
			Name: "position", Key: domain.PositionKey, SetID: func(p *domain.Position, id string) { p.ID = id },
		}, log),
		Sponsors: NewCollection(repository.NewList(docs, documents.Sponsors, domain.SponsorKey), Spec[domain.Sponsor]{
			Name: "sponsor", Key: domain.SponsorKey, SetID: func(s *domain.Sponsor, id string) { s.ID = id },
		}, log),
		Tutorials: NewCollection(repository.NewList(docs, documents.Tutorials, domain.TutorialKey), Spec[domain.Tutorial]{
			Name: "tutorial", Key: domain.TutorialKey, SetID: func(t *domain.Tutorial, id string) { t.ID = id },
		}, log),
		Calendar: NewCollection(repository.NewList(docs, documents.Calendar, domain.CalendarEventKey), Spec[domain.CalendarEvent]{
			Name: "calendar event", Key: domain.CalendarEventKey, SetID: func(e *domain.CalendarEvent, id string) { e.ID = id },
		}, log),
		Shop: NewCollection(repository.NewList(docs, documents.Shop, domain.ShopItemKey), Spec[domain.ShopItem]{
			Name: "shop item", Key: domain.ShopItemKey, SetID: func(i *domain.ShopItem, id string) { i.ID = id },
		}, log),
		PastEvents: NewCollection(repository.NewList(docs, documents.PastEvents, domain.PastEventKey), Spec[domain.PastEvent]{
			Name: "past event", Key: domain.PastEventKey, SetID: func(e *domain.PastEvent, id string) { e.ID = id },
		}, log),
		CourseLinks: NewCollection(repository.NewList(docs, documents.CourseLinks, domain.CourseLinkKey), Spec[domain.CourseLink]{
			Name: "course link", Key: domain.CourseLinkKey,
		}, log),
		FolderLinks: NewCollection(repository.NewList(docs, documents.FolderLinks, domain.FolderLinkKey), Spec[domain.FolderLink]{
			Name: "folder link", Key: domain.FolderLinkKey,
		}, log),

		Team:        &TeamService{repo: repository.NewTeam(docs)},
		OfficeHours: &OfficeHoursService{repo: repository.NewObject[domain.OfficeHours](docs, documents.OfficeHours)},
		Conference:  &ConferenceService{repo: repository.NewObject[domain.ConferenceConfig](docs, documents.Conference)},
	}
}

// ReplaceTeam replaces the roster and, when photo is non-nil, the team photo
// with one write of the team document.
func (s *Site) ReplaceTeam(ctx context.Context, members []domain.Member, photo *domain.TeamPhoto) error {
	var siblings map[string]any
	if photo != nil {
		siblings = map[string]any{"teamPhotoUrl": photo.TeamPhotoURL}
	}
	return s.Members.ReplaceAllWith(ctx, members, siblings)
}

type TeamService struct {
	repo *repository.TeamRepository
}

func (s *TeamService) PhotoURL(ctx context.Context) (*string, error) {
	return s.repo.PhotoURL(ctx)
}

func (s *TeamService) SetPhotoURL(ctx context.Context, url *string) error {
	return s.repo.SetPhotoURL(ctx, url)
}

type OfficeHoursService struct {
	repo *repository.ObjectRepository[domain.OfficeHours]
}

func (s *OfficeHoursService) Get(ctx context.Context) (domain.OfficeHours, error) {
	return s.repo.Get(ctx)
}

// Put stores new hours. Days and slots must come from the fixed enumerations,
// which are always written back unchanged.
func (s *OfficeHoursService) Put(ctx context.Context, oh domain.OfficeHours) (domain.OfficeHours, error) {
	if err := domain.Validate(oh); err != nil {
		return domain.OfficeHours{}, err
	}
	for day, slots := range oh.Hours {
		if !slices.Contains(documents.DaysOfWeek, day) {
			return domain.OfficeHours{}, domain.Invalid("hours", fmt.Sprintf("has unknown day %q", day))
		}
		for slot, names := range slots {
			if !slices.Contains(documents.TimeSlots, slot) {
				return domain.OfficeHours{}, domain.Invalid("hours", fmt.Sprintf("has unknown time slot %q on %s", slot, day))
			}
			if names == nil {
				slots[slot] = []string{}
			}
		}
	}
	oh.DaysOfWeek = append([]string(nil), documents.DaysOfWeek...)
	oh.TimeSlots = append([]string(nil), documents.TimeSlots...)

	if err := s.repo.Put(ctx, oh); err != nil {
		return domain.OfficeHours{}, err
	}
	return oh, nil
}

type ConferenceService struct {
	repo *repository.ObjectRepository[domain.ConferenceConfig]
}

// Get fails with documents.ErrMissing until the flag has been written once.
func (s *ConferenceService) Get(ctx context.Context) (domain.ConferenceConfig, error) {
	return s.repo.Get(ctx)
}

func (s *ConferenceService) Put(ctx context.Context, cfg domain.ConferenceConfig) error {
	if err := domain.Validate(cfg); err != nil {
		return err
	}
	return s.repo.Put(ctx, cfg)
}
