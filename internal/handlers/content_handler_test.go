package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"association-site-api/internal/datasource"
	"association-site-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMedia_ListServesFromCacheUntilWrite(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/media", nil)
	requireStatus(t, w, http.StatusOK)
	v := decodeView(t, w)
	require.JSONEq(t, `[]`, string(v.Data))
	require.Nil(t, v.Error)
	require.True(t, s.handler.Cache.Has(datasource.KeyMediaItems))

	w = s.do(t, http.MethodPost, "/api/admin/media", map[string]string{
		"title":    "Summer fair",
		"url":      "https://example.org/fair.jpg",
		"category": "events",
	})
	requireStatus(t, w, http.StatusCreated)
	var created models.MediaItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.KindPhoto, created.Kind)

	// the write dropped the cached list
	require.False(t, s.handler.Cache.Has(datasource.KeyMediaItems))

	w = s.do(t, http.MethodGet, "/api/media", nil)
	requireStatus(t, w, http.StatusOK)
	var items []models.MediaItem
	require.NoError(t, json.Unmarshal(decodeView(t, w).Data, &items))
	require.Len(t, items, 1)
	require.Equal(t, "Summer fair", items[0].Title)
}

func TestMedia_CategoryFilter(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []map[string]string{
		{"title": "a", "url": "https://example.org/a.jpg", "category": "events"},
		{"title": "b", "url": "https://example.org/b.mp4", "category": "press", "kind": "video"},
	} {
		requireStatus(t, s.do(t, http.MethodPost, "/api/admin/media", body), http.StatusCreated)
	}

	w := s.do(t, http.MethodGet, "/api/media?category=press", nil)
	requireStatus(t, w, http.StatusOK)
	var items []models.MediaItem
	require.NoError(t, json.Unmarshal(decodeView(t, w).Data, &items))
	require.Len(t, items, 1)
	require.Equal(t, models.KindVideo, items[0].Kind)
	require.Equal(t, []string{datasource.KeyMediaItems}, s.handler.Cache.Keys())
}

func TestMedia_UnknownCategoriesAddNoCacheEntries(t *testing.T) {
	s := newTestServer(t)
	requireStatus(t, s.do(t, http.MethodPost, "/api/admin/media", map[string]string{
		"title": "a", "url": "https://example.org/a.jpg", "category": "events",
	}), http.StatusCreated)

	for i := 0; i < 50; i++ {
		w := s.do(t, http.MethodGet, "/api/media?category=junk-"+strconv.Itoa(i), nil)
		requireStatus(t, w, http.StatusOK)
		require.JSONEq(t, `[]`, string(decodeView(t, w).Data))
	}

	require.Equal(t, []string{datasource.KeyMediaItems}, s.handler.Cache.Keys())
	require.Equal(t, 1, s.handler.Cache.Len())
}

func TestMedia_ValidationAndNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/admin/media", map[string]string{
		"title": "bad", "url": "https://example.org/x", "kind": "hologram",
	})
	requireStatus(t, w, http.StatusBadRequest)

	w = s.do(t, http.MethodPost, "/api/admin/media", map[string]string{"title": "no url"})
	requireStatus(t, w, http.StatusBadRequest)

	title := "renamed"
	w = s.do(t, http.MethodPut, "/api/admin/media/missing", map[string]*string{"title": &title})
	requireStatus(t, w, http.StatusNotFound)

	w = s.do(t, http.MethodDelete, "/api/admin/media/missing", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestMedia_AdminRequiresToken(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	w := s.do(t, http.MethodPost, "/api/admin/media", map[string]string{
		"title": "a", "url": "https://example.org/a.jpg",
	})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestNewsletter_SubscribeLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "Ana@Example.org", "name": "Ana"})
	requireStatus(t, w, http.StatusCreated)

	w = s.do(t, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "ana@example.org"})
	requireStatus(t, w, http.StatusConflict)

	w = s.do(t, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "not-an-email"})
	requireStatus(t, w, http.StatusBadRequest)

	requireStatus(t, s.do(t, http.MethodPost, "/api/newsletter/unsubscribe", map[string]string{"email": "ana@example.org"}), http.StatusOK)

	// resubscribing reactivates the existing row
	w = s.do(t, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": "ana@example.org"})
	requireStatus(t, w, http.StatusOK)

	w = s.do(t, http.MethodGet, "/api/admin/subscribers", nil)
	requireStatus(t, w, http.StatusOK)
	var subs []models.NewsletterSubscriber
	require.NoError(t, json.Unmarshal(decodeView(t, w).Data, &subs))
	require.Len(t, subs, 1)
	require.True(t, subs[0].Active)
}

func TestNewsletter_SendPublishes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/admin/newsletters", map[string]string{"subject": "Spring", "body": "Hello"})
	requireStatus(t, w, http.StatusCreated)
	var n models.Newsletter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	require.Equal(t, models.NewsletterDraft, n.Status)

	// prime the public list while it is still empty
	w = s.do(t, http.MethodGet, "/api/newsletters", nil)
	requireStatus(t, w, http.StatusOK)
	require.JSONEq(t, `[]`, string(decodeView(t, w).Data))

	requireStatus(t, s.do(t, http.MethodPost, "/api/admin/newsletters/"+n.ID+"/send", nil), http.StatusOK)
	requireStatus(t, s.do(t, http.MethodPost, "/api/admin/newsletters/"+n.ID+"/send", nil), http.StatusConflict)

	subject := "Edited"
	w = s.do(t, http.MethodPut, "/api/admin/newsletters/"+n.ID, map[string]*string{"subject": &subject})
	requireStatus(t, w, http.StatusConflict)

	w = s.do(t, http.MethodGet, "/api/newsletters", nil)
	requireStatus(t, w, http.StatusOK)
	var published []models.Newsletter
	require.NoError(t, json.Unmarshal(decodeView(t, w).Data, &published))
	require.Len(t, published, 1)
	require.Equal(t, models.NewsletterSent, published[0].Status)
	require.NotNil(t, published[0].SentAt)
}

func TestContact_CreateAndMarkRead(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Bo", "email": "bo@example.org", "message": "Hi there",
	})
	requireStatus(t, w, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = s.do(t, http.MethodGet, "/api/admin/messages?unread=true", nil)
	requireStatus(t, w, http.StatusOK)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)

	requireStatus(t, s.do(t, http.MethodPatch, "/api/admin/messages/"+created.ID+"/read", nil), http.StatusOK)

	w = s.do(t, http.MethodGet, "/api/admin/messages?unread=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 0, list.Count)

	requireStatus(t, s.do(t, http.MethodPatch, "/api/admin/messages/missing/read", nil), http.StatusNotFound)
}
