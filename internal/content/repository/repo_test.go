package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/documents"
	"github.com/clubsite/site-api/internal/logging"
	"github.com/clubsite/site-api/internal/storage/storagetest"
)

func newDocs() (*documents.Repository, *storagetest.Memory) {
	mem := storagetest.NewMemory()
	return documents.NewRepository(mem, logging.Discard()), mem
}

func TestListRepository_ReplaceKeepsSiblings(t *testing.T) {
	docs, mem := newDocs()
	mem.Seed("data/team.json", `{"teamMembers":[],"teamPhotoUrl":"/files/uploads/team/photo.jpg"}`)

	repo := NewList(docs, documents.Team, domain.MemberKey)
	err := repo.Replace(context.Background(), []domain.Member{{ID: "1", Name: "Ada", Position: "President", ImageURL: "/a.jpg", Section: "presidents"}})
	require.NoError(t, err)

	stored, _ := mem.Get("data/team.json")
	assert.Contains(t, stored, `"teamPhotoUrl": "/files/uploads/team/photo.jpg"`)

	members, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ada", members[0].Name)
}

func TestListRepository_BareSponsors(t *testing.T) {
	docs, mem := newDocs()
	repo := NewList(docs, documents.Sponsors, domain.SponsorKey)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, repo.Replace(context.Background(), nil))
	stored, _ := mem.Get("data/sponsors.json")
	assert.JSONEq(t, `[]`, stored)
}

func TestListRepository_ReplaceKeepsUndeclaredFields(t *testing.T) {
	docs, mem := newDocs()
	mem.Seed("data/calendar.json", `{"events":[
		{"id":"e1","title":"Kickoff","start":"2024-09-01","end":"2024-09-01","allDay":true,"color":"red","location":"Hall","description":"old"},
		{"id":"e2","title":"Social","start":"2024-09-02","end":"2024-09-02","allDay":false,"color":"blue"}
	]}`)
	repo := NewList(docs, documents.Calendar, domain.CalendarEventKey)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	items[0].Description = ""
	items = items[:1]
	require.NoError(t, repo.Replace(context.Background(), items))

	stored, _ := mem.Get("data/calendar.json")
	assert.JSONEq(t, `{"events":[
		{"id":"e1","title":"Kickoff","start":"2024-09-01","end":"2024-09-01","allDay":true,"color":"red","location":"Hall"}
	]}`, stored)
}

func TestObjectRepository_OfficeHours(t *testing.T) {
	docs, _ := newDocs()
	repo := NewObject[domain.OfficeHours](docs, documents.OfficeHours)

	oh, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, documents.DaysOfWeek, oh.DaysOfWeek)
	assert.Empty(t, oh.Hours)

	oh.Location = "Room 101"
	oh.Hours = map[string]map[string][]string{"Monday": {"10:00-11:00": {"Ada"}}}
	require.NoError(t, repo.Put(context.Background(), oh))

	again, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Room 101", again.Location)
	assert.Equal(t, []string{"Ada"}, again.Hours["Monday"]["10:00-11:00"])
}

func TestTeamRepository_PhotoURL(t *testing.T) {
	docs, _ := newDocs()
	repo := NewTeam(docs)

	url, err := repo.PhotoURL(context.Background())
	require.NoError(t, err)
	assert.Nil(t, url)

	photo := "/files/uploads/team/group.jpg"
	require.NoError(t, repo.SetPhotoURL(context.Background(), &photo))
	url, err = repo.PhotoURL(context.Background())
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, photo, *url)
}
