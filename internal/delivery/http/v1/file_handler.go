package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"
	"time"

	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"
	"nextcareer-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
)

const (
	maxUploadSize  = 10 << 20 // 10 MB
	avatarMaxDim   = 512
	avatarQuality  = 85
	downloadExpiry = 15 * time.Minute
)

// FileHandler is thin plumbing in front of the blob store collaborator:
// resumes are stored as-is, avatars are downscaled and re-encoded first.
type FileHandler struct {
	blobs    *storage.Client
	userRepo domain.UserRepository
}

// NewFileHandler registers file upload/download routes
func NewFileHandler(r *gin.RouterGroup, blobs *storage.Client, userRepo domain.UserRepository) {
	handler := &FileHandler{blobs: blobs, userRepo: userRepo}

	files := r.Group("/files")
	{
		files.POST("/resumes/:userId", handler.UploadResume)
		files.GET("/resumes/:userId/url", handler.ResumeURL)
		files.POST("/avatars/:userId", handler.UploadAvatar)
	}
}

// UploadResume godoc
// @Summary      Upload a user's resume
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Param        file    formData  file    true  "Resume file"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /files/resumes/{userId} [post]
func (h *FileHandler) UploadResume(c *gin.Context) {
	userID := c.Param("userId")

	data, contentType, filename, err := readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	// Timestamped key avoids clobbering earlier uploads
	key := fmt.Sprintf("resumes/%s/%d-%s", userID, time.Now().UnixMilli(), filename)
	if err := h.blobs.Upload(c, key, contentType, bytes.NewReader(data)); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	if err := h.userRepo.UpdateFileKey(c, userID, domain.FileKindResume, key); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "Resume uploaded", gin.H{"key": key})
}

// ResumeURL godoc
// @Summary      Get a time-limited download URL for a user's resume
// @Tags         files
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /files/resumes/{userId}/url [get]
func (h *FileHandler) ResumeURL(c *gin.Context) {
	user, err := h.userRepo.GetByID(c, c.Param("userId"))
	if err != nil {
		c.Error(apperror.NotFound("User not found"))
		return
	}
	if user.ResumeKey == nil {
		c.Error(apperror.NotFound("No resume uploaded"))
		return
	}

	url, err := h.blobs.PresignDownload(c, *user.ResumeKey, downloadExpiry)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "Download URL generated", gin.H{"url": url})
}

// UploadAvatar godoc
// @Summary      Upload a user's profile image
// @Description  The image is downscaled and re-encoded as JPEG before storage
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Param        file    formData  file    true  "Image file"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /files/avatars/{userId} [post]
func (h *FileHandler) UploadAvatar(c *gin.Context) {
	userID := c.Param("userId")

	data, _, _, err := readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	compressed, err := compressImage(data, avatarMaxDim, avatarQuality)
	if err != nil {
		c.Error(apperror.BadRequest("File is not a supported image"))
		return
	}

	key := fmt.Sprintf("avatars/%s/%d.jpg", userID, time.Now().UnixMilli())
	if err := h.blobs.Upload(c, key, "image/jpeg", bytes.NewReader(compressed)); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	if err := h.userRepo.UpdateFileKey(c, userID, domain.FileKindAvatar, key); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "Avatar uploaded", gin.H{"key": key})
}

// readUpload pulls the multipart "file" field, size-capped
func readUpload(c *gin.Context) ([]byte, string, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", "", apperror.BadRequest("Missing file upload")
	}
	if fileHeader.Size > maxUploadSize {
		return nil, "", "", apperror.BadRequest("File exceeds the 10 MB upload limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		return nil, "", "", apperror.Internal(err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, fileHeader.Filename, nil
}

// compressImage downscales to maxDimension (aspect ratio kept) and
// re-encodes as JPEG
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width >= height && width > maxDimension {
		newWidth = maxDimension
		newHeight = int(float64(height) * float64(maxDimension) / float64(width))
	} else if height > width && height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
