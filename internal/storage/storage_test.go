package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/storage"
)

func TestHashedName(t *testing.T) {
	// md5("hello") = 5d41402abc4b2a76b9719d911017c592
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592.jpg", storage.HashedName("munich.jpg", []byte("hello")))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", storage.HashedName("README", []byte("hello")))
}

func TestPublicURL(t *testing.T) {
	c := storage.New(nil, "https://project.supabase.co/", "key")

	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/images/articles/abc.png",
		c.PublicURL("images", "articles/abc.png"))
}

func TestUpload(t *testing.T) {
	var (
		gotPath, gotType, gotUpsert, gotAuth string
		gotBody                              []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"images/articles/abc.png"}`))
	}))
	t.Cleanup(srv.Close)

	c := storage.New(srv.Client(), srv.URL, "secret")
	err := c.Upload(context.Background(), "images", "articles/abc.png", []byte("png-bytes"), "image/png", true)

	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/images/articles/abc.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []byte("png-bytes"), gotBody)
}

func TestUpload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	err := storage.New(srv.Client(), srv.URL, "k").Upload(context.Background(), "images", "a.png", nil, "image/png", true)

	assert.ErrorIs(t, err, domain.ErrUpstream)
	var se *storage.StatusError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Temporary())
}

func TestListAll_PagesAndSkipsPlaceholders(t *testing.T) {
	// 3 real objects + placeholder, served 2 per page.
	objects := []storage.Object{{Name: storage.PlaceholderName}, {Name: "a.jpg"}, {Name: "b.jpg"}, {Name: "c.jpg"}}
	var offsets []int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		offsets = append(offsets, req.Offset)

		end := min(req.Offset+req.Limit, len(objects))
		page := []storage.Object{}
		if req.Offset < len(objects) {
			page = objects[req.Offset:end]
		}
		assert.NoError(t, json.NewEncoder(w).Encode(page))
	}))
	t.Cleanup(srv.Close)

	got, err := storage.New(srv.Client(), srv.URL, "k").ListAll(context.Background(), "images", "", 2)

	require.NoError(t, err)
	assert.Equal(t, []storage.Object{{Name: "a.jpg"}, {Name: "b.jpg"}, {Name: "c.jpg"}}, got)
	assert.Equal(t, []int{0, 2, 4}, offsets)
}
