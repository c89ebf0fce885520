package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"travel-agency/apperror"
	"travel-agency/config"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	"travel-agency/resource"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PublicPrefix is the URL path uploaded files are served from.
const PublicPrefix = "/api/uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".mp4":  true,
	".webm": true,
}

type UploadController struct {
	base.Controller
	cfg config.UploadConfig
}

func NewUploadController(cfg config.UploadConfig, asyncLogger *logger.AsyncLogger) *UploadController {
	return &UploadController{
		Controller: base.Controller{Logger: asyncLogger},
		cfg:        cfg,
	}
}

// Store saves a multipart "file" under a random name and returns its public URL
func (uc *UploadController) Store(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return uc.Fail(c, apperror.InvalidField("file", "is required"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return uc.Fail(c, apperror.InvalidField("file", "file type "+ext+" is not allowed"))
	}
	if file.Size > uc.cfg.MaxBytes {
		return uc.SendResponseWithLog(c, fiber.StatusRequestEntityTooLarge, types.ApiResponse{
			Message: fmt.Sprintf("File is larger than %d bytes", uc.cfg.MaxBytes),
		})
	}

	if err := os.MkdirAll(uc.cfg.Dir, 0o755); err != nil {
		return uc.Fail(c, apperror.Internal("Failed to store file", err))
	}
	name := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(uc.cfg.Dir, name)); err != nil {
		return uc.Fail(c, apperror.Internal("Failed to store file", err))
	}

	logger.Success(fmt.Sprintf("Uploaded %s as %s (%d bytes)", file.Filename, name, file.Size))
	return uc.Created(c, "File uploaded successfully", resource.UploadResponse{
		URL:      PublicPrefix + "/" + name,
		Filename: name,
	})
}
