package routes

import (
	"bytes"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/uploads"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A saved image's URL must resolve against the static mount.
func TestSavedImageURLIsServable(t *testing.T) {
	root := t.TempDir()
	media := uploads.NewLocalMedia(root, "/media")

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))

	up, err := media.SaveImage(&buf, "products")
	require.NoError(t, err)

	router := httprouter.New()
	AddStaticRoutes(router, Deps{MediaRoot: root})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, up.URL, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, rec.Body.Len())
}
