package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestAdminPolicyChecks(t *testing.T) {
	require.Nil(t, checkUpload(fileHeader("ok.jpg", "image/jpeg", 1<<20), adminUploadPolicy))
	require.Nil(t, checkUpload(fileHeader("ok.PNG", "image/png", 1<<20), adminUploadPolicy))

	uerr := checkUpload(fileHeader("big.jpg", "image/jpeg", 11<<20), adminUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "FILE_TOO_LARGE", uerr.code)

	uerr = checkUpload(fileHeader("doc.pdf", "application/pdf", 100), adminUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "UPLOAD_ERROR", uerr.code)

	// right mime, wrong extension
	uerr = checkUpload(fileHeader("photo.webp", "image/jpeg", 100), adminUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "UPLOAD_ERROR", uerr.code)
}

func TestPublicPolicyAcceptsAnyImage(t *testing.T) {
	require.Nil(t, checkUpload(fileHeader("raw.webp", "image/webp", 500<<20), publicUploadPolicy))

	uerr := checkUpload(fileHeader("movie.mp4", "video/mp4", 100), publicUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "UPLOAD_ERROR", uerr.code)
}

type stubUploader struct {
	uploads []string
	fail    bool
}

func (u *stubUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if u.fail {
		return "", fmt.Errorf("bucket unavailable")
	}
	u.uploads = append(u.uploads, filename)
	return "https://bucket/" + filename, nil
}

func multipartContext(t *testing.T, files ...string) *gin.Context {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, name))
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c
}

func TestSaveUploadsStoresWholeBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := &stubUploader{}

	urls, uerr := saveUploads(multipartContext(t, "a.jpg", "b.jpg"), up, adminUploadPolicy)
	require.Nil(t, uerr)
	require.Equal(t, []string{"https://bucket/a.jpg", "https://bucket/b.jpg"}, urls)
}

func TestSaveUploadsRejectsOversizedBatchBeforeUploading(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := &stubUploader{}

	_, uerr := saveUploads(multipartContext(t, "1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"), up, adminUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "TOO_MANY_FILES", uerr.code)
	require.Empty(t, up.uploads)
}

func TestSaveUploadsRejectsBadFileBeforeUploading(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := &stubUploader{}

	c := multipartContext(t, "good.jpg", "bad.txt")
	_, uerr := saveUploads(c, up, adminUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "UPLOAD_ERROR", uerr.code)
	require.Empty(t, up.uploads)
}

func TestSaveUploadsSurfacesStorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := &stubUploader{fail: true}

	_, uerr := saveUploads(multipartContext(t, "a.jpg"), up, adminUploadPolicy)
	require.NotNil(t, uerr)
	require.Equal(t, "S3_UPLOAD_ERROR", uerr.code)
}

func TestSaveUploadsNoBodyMeansNoFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	urls, uerr := saveUploads(c, &stubUploader{}, adminUploadPolicy)
	require.Nil(t, uerr)
	require.Nil(t, urls)
}
