package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, filenames ...string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range filenames {
		part, err := writer.CreateFormFile(uploadField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestUploadedFilesKeepsOrder(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, "a.png", "b.png", "c.png")
	c := e.NewContext(req, httptest.NewRecorder())

	files := UploadedFiles(c)
	require.Len(t, files, 3)
	assert.Equal(t, "a.png", files[0].Filename)
	assert.Equal(t, "b.png", files[1].Filename)
	assert.Equal(t, "c.png", files[2].Filename)
	assert.NotZero(t, files[0].Size)
}

func TestUploadedFilesNonMultipart(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Nil(t, UploadedFiles(c))
}
