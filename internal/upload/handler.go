package upload

import (
	"net/http"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves image uploads and asset reads.
type Handler struct {
	images *ImageService
	assets assets.Service
	logger *zap.Logger
}

func NewHandler(images *ImageService, assets assets.Service, logger *zap.Logger) *Handler {
	return &Handler{images: images, assets: assets, logger: logger}
}

// UploadResponse carries the id to put into a photo field.
type UploadResponse struct {
	AssetID string `json:"assetId"`
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets", h.upload)
	router.GET("/assets/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	// Multipart framing adds a little on top of the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.images.MaxBytes()+64<<10)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("Upload: missing or unreadable file", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Expected an image in the 'file' form field."))
		return
	}
	id, err := h.images.SaveUploadedFile(c.Request.Context(), common.GetDeviceIDFromContext(c), fileHeader)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Image uploaded successfully.", UploadResponse{AssetID: id})
}

// get writes the asset's image bytes.
func (h *Handler) get(c *gin.Context) {
	payload, err := h.assets.Get(c.Request.Context(), common.GetDeviceIDFromContext(c), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	contentType, data, err := DecodeDataURL(payload)
	if err != nil {
		h.logger.Warn("Stored asset is not a data URL", zap.String("asset_id", c.Param("id")), zap.Error(err))
		common.RespondWithError(c, common.ErrNotFound.WithDetails("Asset has no image data."))
		return
	}
	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}
