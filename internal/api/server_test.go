package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amterp/boardkit/testutil"
)

func TestServer_WrappedHandler(t *testing.T) {
	svc := testutil.NewServices(t)
	server := NewServer(NewHandler(svc.Boards, svc.Lists, svc.Cards), svc.Doc, 0, "")

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/boards")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Equal(t, ":0", server.Addr())
}
