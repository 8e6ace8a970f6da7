package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/policy"
	"github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/storage"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
	maxFileSize   int64
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
		maxFileSize:   5 * 1024 * 1024,
	}
}

var fileHandler *FileHandler

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *FileHandler) UploadBookImage(c echo.Context) error {
	return h.upload(c, h.storageClient.UploadBookImage)
}

func (h *FileHandler) UploadAvatar(c echo.Context) error {
	return h.upload(c, h.storageClient.UploadAvatar)
}

func (h *FileHandler) upload(c echo.Context, store storage.UploadFunc) error {
	uid := c.Get("uid").(string)
	if !policy.CanWriteObject(uid) {
		return response.Error(c, errors.Forbidden("You must be signed in to upload files", nil))
	}

	file, err := c.FormFile("file")
	if err != nil {
		logger.Error("Error getting file from form: %v", err)
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	logger.Debug("Received file: %s, size: %d bytes, type: %s", file.Filename, file.Size, file.Header.Get("Content-Type"))

	if file.Size > h.maxFileSize {
		logger.Warn("File too large: %d bytes (max: %d)", file.Size, h.maxFileSize)
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		logger.Warn("Invalid file type: %s", contentType)
		return response.Error(c, errors.BadRequest("File type not supported. Upload a JPEG, PNG, GIF or WebP image", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	url, err := store(c.Request().Context(), src, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"url": url})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	uid := c.Get("uid").(string)
	if !policy.CanWriteObject(uid) {
		return response.Error(c, errors.Forbidden("You must be signed in to delete files", nil))
	}

	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.storageClient.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"deleted": true})
}
