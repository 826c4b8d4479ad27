package netx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// echoServer parses the multipart body and reports what it saw.
func echoServer(t *testing.T, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		check(r)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, b *MultipartBody) {
	t.Helper()
	resp, err := http.Post(url, b.ContentType, b.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFileForm_RoundTrip(t *testing.T) {
	var gotName, gotBody string
	ts := echoServer(t, func(r *http.Request) {
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName, gotBody = hdr.Filename, string(b)
	})

	body, err := FileForm("file", "bookmarks.json", strings.NewReader(`{"roots":{}}`))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(body.ContentType, "multipart/form-data; boundary="))

	post(t, ts.URL, body)
	require.Equal(t, "bookmarks.json", gotName)
	require.Equal(t, `{"roots":{}}`, gotBody)
}

func TestLocalFileForm_UsesBaseName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	var gotName string
	ts := echoServer(t, func(r *http.Request) {
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		gotName = hdr.Filename
	})

	body, err := LocalFileForm("file", path)
	require.NoError(t, err)
	post(t, ts.URL, body)
	require.Equal(t, "me.png", gotName)
}

func TestLocalFileForm_MissingFile(t *testing.T) {
	_, err := LocalFileForm("file", filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValueForm(t *testing.T) {
	var got string
	ts := echoServer(t, func(r *http.Request) {
		got = r.FormValue("username")
	})

	body, err := ValueForm("username", "wanderer")
	require.NoError(t, err)
	post(t, ts.URL, body)
	require.Equal(t, "wanderer", got)

	_, err = ValueForm("lonely")
	require.Error(t, err)
}
