package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/uaszones/internal/config"
	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/zone"
)

func testContext(t *testing.T) (*ServerContext, *int) {
	t.Helper()

	doc := `{"title":"Test zones","features":[` +
		`{"identifier":"IT-MI01","name":"Milano CTR","geometry":[{"lowerLimit":0,"lowerVerticalReference":"AGL","upperLimit":500,"upperVerticalReference":"AMSL","horizontalProjection":{"type":"Polygon","coordinates":[[[9.1,45.4],[9.3,45.4],[9.3,45.6],[9.1,45.6],[9.1,45.4]]]}}]},` +
		`{"identifier":"IT-RM01","name":"Roma heliport","geometry":[{"lowerLimit":25,"lowerVerticalReference":"AMSL","upperLimit":120,"upperVerticalReference":"AMSL","horizontalProjection":{"type":"Point","coordinates":[12.5,41.9]}}]}` +
		`]}`

	c, err := ed269.Decode([]byte(doc))
	require.NoError(t, err)

	saves := 0
	session := zone.NewSession(c, func(*ed269.Collection) error {
		saves++
		return nil
	})

	return NewServerContext(session, config.Default(), c.Title()), &saves
}

func TestHandleIndex(t *testing.T) {
	ctx, _ := testContext(t)
	srv := httptest.NewServer(RequestLogger(ctx.Routes()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp, err = http.Get(srv.URL + "/nonexistent")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleFilter(t *testing.T) {
	ctx, saves := testContext(t)
	srv := httptest.NewServer(ctx.Routes())
	defer srv.Close()

	// circle around Milan, radius in meters as the draw control reports it
	body := `{"lat":45.465,"lon":9.189,"radius":30000}`
	resp, err := http.Post(srv.URL+"/filter", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, *saves)

	current := ctx.Session.Current()
	require.Len(t, current.Features, 1)
	assert.Equal(t, "IT-MI01", current.Features[0].Identifier)
}

func TestHandleFilterRejectsBadRequests(t *testing.T) {
	ctx, saves := testContext(t)
	srv := httptest.NewServer(ctx.Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/filter", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/filter", "application/json", strings.NewReader(`{"lat":95,"lon":9.2,"radius":1000}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/filter")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	assert.Zero(t, *saves)
	assert.Len(t, ctx.Session.Current().Features, 2)
}

func TestHandleReset(t *testing.T) {
	ctx, _ := testContext(t)
	srv := httptest.NewServer(ctx.Routes())
	defer srv.Close()

	body := `{"lat":45.465,"lon":9.189,"radius":30000}`
	resp, err := http.Post(srv.URL+"/filter", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Len(t, ctx.Session.Current().Features, 1)

	resp, err = http.Post(srv.URL+"/reset", "", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, ctx.Session.Current().Features, 2)
}
