package handlers

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// Uploader is the piece of the object store handlers need.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// uploadPolicy bounds one multipart submission. A nil allowedMime set means
// any image/* content type is accepted.
type uploadPolicy struct {
	maxFiles    int
	maxFileSize int64
	allowedMime map[string]bool
	allowedExt  *regexp.Regexp
}

// Admin console uploads: small, strictly typed.
var adminUploadPolicy = uploadPolicy{
	maxFiles:    5,
	maxFileSize: 10 << 20, // 10MB
	allowedMime: map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
	},
	allowedExt: regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif)$`),
}

// Public submissions: any image, effectively unbounded size.
var publicUploadPolicy = uploadPolicy{
	maxFiles:    20,
	maxFileSize: 1000 << 20, // ~1GB
}

type uploadError struct {
	status  int
	code    string
	message string
}

func (e *uploadError) write(c *gin.Context) {
	c.JSON(e.status, gin.H{"message": e.message, "error": e.code})
}

func checkUpload(file *multipart.FileHeader, policy uploadPolicy) *uploadError {
	if file.Size > policy.maxFileSize {
		return &uploadError{http.StatusBadRequest, "FILE_TOO_LARGE",
			"File too large for this upload."}
	}
	contentType := file.Header.Get("Content-Type")
	if policy.allowedMime != nil {
		if !policy.allowedMime[contentType] {
			return &uploadError{http.StatusBadRequest, "UPLOAD_ERROR",
				"Invalid file type: " + contentType + ". Only JPEG, PNG, and GIF images are allowed."}
		}
		if !policy.allowedExt.MatchString(file.Filename) {
			return &uploadError{http.StatusBadRequest, "UPLOAD_ERROR",
				"Invalid file extension. Only .jpg, .jpeg, .png, and .gif files are allowed."}
		}
	} else if !strings.HasPrefix(contentType, "image/") {
		return &uploadError{http.StatusBadRequest, "UPLOAD_ERROR",
			"Only image files are allowed!"}
	}
	return nil
}

// saveUploads validates and stores every file in the "images" field,
// returning the stored URLs. The whole batch is validated before anything is
// uploaded, so a rejected file never leaves half a batch in the bucket.
func saveUploads(c *gin.Context, uploader Uploader, policy uploadPolicy) ([]string, *uploadError) {
	form, err := c.MultipartForm()
	if err != nil {
		// no multipart body means no files, which is fine
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > policy.maxFiles {
		return nil, &uploadError{http.StatusBadRequest, "TOO_MANY_FILES",
			"Too many files for this upload."}
	}
	if uploader == nil {
		return nil, &uploadError{http.StatusInternalServerError, "S3_UPLOAD_ERROR",
			"File storage is not configured."}
	}
	for _, file := range files {
		if uerr := checkUpload(file, policy); uerr != nil {
			return nil, uerr
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, &uploadError{http.StatusInternalServerError, "S3_UPLOAD_ERROR",
				"File upload to cloud storage failed."}
		}
		url, err := uploader.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
		src.Close()
		if err != nil {
			log.Printf("[upload][err] store %s: %v", file.Filename, err)
			return nil, &uploadError{http.StatusInternalServerError, "S3_UPLOAD_ERROR",
				"File upload to cloud storage failed."}
		}
		urls = append(urls, url)
	}
	return urls, nil
}
