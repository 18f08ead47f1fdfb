package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/documents"
	"github.com/clubsite/site-api/internal/logging"
	"github.com/clubsite/site-api/internal/storage"
	"github.com/clubsite/site-api/internal/storage/storagetest"
)

func newSite() (*Site, *storagetest.Memory) {
	mem := storagetest.NewMemory()
	docs := documents.NewRepository(mem, logging.Discard())
	return NewSite(docs, logging.Discard()), mem
}

func boolPtr(b bool) *bool { return &b }

func event(title string) domain.CalendarEvent {
	return domain.CalendarEvent{Title: title, Start: "2024-09-01T18:00:00Z", End: "2024-09-01T19:00:00Z", AllDay: boolPtr(false)}
}

func TestCreate_SponsorScenario(t *testing.T) {
	site, mem := newSite()
	mem.Seed("data/sponsors.json", `[]`)
	ctx := context.Background()

	created, err := site.Sponsors.Create(ctx, domain.Sponsor{
		Name: "Acme", ImageURL: "/img/acme.png", WebsiteURL: "https://acme.test", Category: "corporate",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	list, err := site.Sponsors.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	stored, _ := mem.Get("data/sponsors.json")
	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stored), &raw), "sponsors must stay a bare array")
	assert.Equal(t, "Acme", raw[0]["name"])
}

func TestCreate_AddsExactlyOneEntity(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()

	_, err := site.Calendar.Create(ctx, event("Kickoff"))
	require.NoError(t, err)
	before, err := site.Calendar.List(ctx)
	require.NoError(t, err)

	e := event("Hack night")
	e.ID = "custom-id"
	created, err := site.Calendar.Create(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "custom-id", created.ID)

	after, err := site.Calendar.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, e, after[len(after)-1])
}

func TestWrites_PreserveFieldsOfStoredEntities(t *testing.T) {
	site, mem := newSite()
	mem.Seed("data/calendar.json", `{"events":[{"id":"e1","title":"Kickoff","start":"2024-09-01","end":"2024-09-01","allDay":true,"color":"red","location":"Hall"}]}`)
	ctx := context.Background()

	_, err := site.Calendar.Create(ctx, event("Social"))
	require.NoError(t, err)

	var stored struct {
		Events []map[string]any `json:"events"`
	}
	raw, _ := mem.Get("data/calendar.json")
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored.Events, 2)
	assert.Equal(t, "red", stored.Events[0]["color"])
	assert.Equal(t, "Hall", stored.Events[0]["location"])

	_, err = site.Calendar.Update(ctx, "e1", json.RawMessage(`{"title":"Kickoff 2"}`))
	require.NoError(t, err)
	raw, _ = mem.Get("data/calendar.json")
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "Kickoff 2", stored.Events[0]["title"])
	assert.Equal(t, "red", stored.Events[0]["color"])
}

func TestCreate_GeneratedIDsAreUnique(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()
	a, err := site.Calendar.Create(ctx, event("A"))
	require.NoError(t, err)
	b, err := site.Calendar.Create(ctx, event("B"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreate_DuplicateIDConflicts(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()
	e := event("A")
	e.ID = "same"
	_, err := site.Calendar.Create(ctx, e)
	require.NoError(t, err)
	_, err = site.Calendar.Create(ctx, e)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCreate_InvalidEntityIsNotWritten(t *testing.T) {
	site, mem := newSite()
	_, err := site.Sponsors.Create(context.Background(), domain.Sponsor{Name: "NoCategory", ImageURL: "x", WebsiteURL: "y"})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "category", ve.Field)
	assert.Equal(t, 0, mem.Writes())
}

func TestDelete_IsIdempotent(t *testing.T) {
	site, mem := newSite()
	ctx := context.Background()

	created, err := site.Shop.Create(ctx, domain.ShopItem{Name: "Hoodie", Price: new(float64), ImageURL: "/h.png", Available: boolPtr(true)})
	require.NoError(t, err)

	require.NoError(t, site.Shop.Delete(ctx, created.ID))
	items, err := site.Shop.List(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.NotEqual(t, created.ID, it.ID)
	}

	writes := mem.Writes()
	require.NoError(t, site.Shop.Delete(ctx, created.ID))
	assert.Equal(t, writes, mem.Writes())
}

func TestUpdate_MergesPatch(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()
	created, err := site.Calendar.Create(ctx, event("Old title"))
	require.NoError(t, err)

	updated, err := site.Calendar.Update(ctx, created.ID, json.RawMessage(`{"title":"New title","id":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Start, updated.Start)

	got, err := site.Calendar.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdate_MissingIDLeavesCollectionUnchanged(t *testing.T) {
	site, mem := newSite()
	ctx := context.Background()
	_, err := site.Calendar.Create(ctx, event("Keep"))
	require.NoError(t, err)
	before, _ := mem.Get("data/calendar.json")
	writes := mem.Writes()

	_, err = site.Calendar.Update(ctx, "nope", json.RawMessage(`{"title":"x"}`))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	after, _ := mem.Get("data/calendar.json")
	assert.Equal(t, before, after)
	assert.Equal(t, writes, mem.Writes())
}

func TestUpdate_InvalidMergeRejected(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()
	created, err := site.Calendar.Create(ctx, event("A"))
	require.NoError(t, err)

	_, err = site.Calendar.Update(ctx, created.ID, json.RawMessage(`{"title":""}`))
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "title", ve.Field)

	_, err = site.Calendar.Update(ctx, created.ID, json.RawMessage(`["not","object"]`))
	_, ok = domain.IsValidation(err)
	assert.True(t, ok)
}

func TestLinkUpsert_ReplacesByNaturalKey(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()

	_, err := site.CourseLinks.Create(ctx, domain.CourseLink{CourseCode: "CS101", LinkURL: "https://old"})
	require.NoError(t, err)
	_, err = site.CourseLinks.Create(ctx, domain.CourseLink{CourseCode: "CS101", LinkURL: "https://new"})
	require.NoError(t, err)

	links, err := site.CourseLinks.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://new", links[0].LinkURL)

	_, err = site.FolderLinks.Create(ctx, domain.FolderLink{CourseCode: "CS101", FolderID: "a", LinkURL: "https://1"})
	require.NoError(t, err)
	_, err = site.FolderLinks.Create(ctx, domain.FolderLink{CourseCode: "CS101", FolderID: "b", LinkURL: "https://2"})
	require.NoError(t, err)
	_, err = site.FolderLinks.Create(ctx, domain.FolderLink{CourseCode: "CS101", FolderID: "a", LinkURL: "https://3"})
	require.NoError(t, err)

	folders, err := site.FolderLinks.List(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "https://3", folders[0].LinkURL)

	require.NoError(t, site.FolderLinks.Delete(ctx, domain.FolderLinkKey(domain.FolderLink{CourseCode: "CS101", FolderID: "a"})))
	folders, err = site.FolderLinks.List(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "b", folders[0].FolderID)
}

func TestReplaceAll_RejectsWholeBatch(t *testing.T) {
	site, mem := newSite()
	ctx := context.Background()
	_, err := site.Calendar.Create(ctx, event("Existing"))
	require.NoError(t, err)
	before, _ := mem.Get("data/calendar.json")

	bad := event("")
	err = site.Calendar.ReplaceAll(ctx, []domain.CalendarEvent{event("One"), bad, event("Three")})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Index)
	assert.Equal(t, "title", ve.Field)

	after, _ := mem.Get("data/calendar.json")
	assert.Equal(t, before, after)
}

func TestReplaceAll_AssignsIDsAndRejectsDuplicates(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()

	require.NoError(t, site.Calendar.ReplaceAll(ctx, []domain.CalendarEvent{event("A"), event("B")}))
	list, err := site.Calendar.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEmpty(t, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)

	a, b := event("A"), event("B")
	a.ID, b.ID = "x", "x"
	err = site.Calendar.ReplaceAll(ctx, []domain.CalendarEvent{a, b})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Index)
}

func TestStoreFailureSurfaces(t *testing.T) {
	site, mem := newSite()
	mem.FailWrites = true
	_, err := site.Calendar.Create(context.Background(), event("A"))
	assert.True(t, errors.Is(err, storage.ErrUnavailable))
}

func TestOfficeHours_PutValidatesEnumerations(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()

	_, err := site.OfficeHours.Put(ctx, domain.OfficeHours{Hours: map[string]map[string][]string{"Sunday": {}}})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Reason, "Sunday")

	_, err = site.OfficeHours.Put(ctx, domain.OfficeHours{Hours: map[string]map[string][]string{"Monday": {"03:00-04:00": {"Ada"}}}})
	_, ok = domain.IsValidation(err)
	assert.True(t, ok)

	saved, err := site.OfficeHours.Put(ctx, domain.OfficeHours{
		Hours:      map[string]map[string][]string{"Monday": {"10:00-11:00": nil}},
		Location:   "Lab",
		DaysOfWeek: []string{"Caller supplied"},
	})
	require.NoError(t, err)
	assert.Equal(t, documents.DaysOfWeek, saved.DaysOfWeek)
	assert.Equal(t, []string{}, saved.Hours["Monday"]["10:00-11:00"])
}

func TestConference_MissingUntilWritten(t *testing.T) {
	site, _ := newSite()
	ctx := context.Background()

	_, err := site.Conference.Get(ctx)
	assert.True(t, errors.Is(err, documents.ErrMissing))

	require.NoError(t, site.Conference.Put(ctx, domain.ConferenceConfig{ConferenceVisible: boolPtr(true)}))
	cfg, err := site.Conference.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg.ConferenceVisible)
	assert.True(t, *cfg.ConferenceVisible)

	err = site.Conference.Put(ctx, domain.ConferenceConfig{})
	_, ok := domain.IsValidation(err)
	assert.True(t, ok)
}
