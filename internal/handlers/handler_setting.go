package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingHandler handles HTTP requests for the settings store.
type settingHandler struct {
	baseHandler
	settingService portssvc.SettingSvcFacade
}

func registerSettingRoutes(rg *gin.RouterGroup, base baseHandler, settingService portssvc.SettingSvcFacade) {
	h := &settingHandler{baseHandler: base, settingService: settingService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.POST("", h.setSetting)
		settings.POST("/bulk", h.bulkSetSettings)
		settings.POST("/initialize-defaults", h.initializeDefaults)
		settings.GET("/category/:category", h.listByCategory)
		settings.GET("/:name", h.getSetting)
		settings.PUT("/:name", h.putSetting)
		settings.DELETE("/:name", h.deleteSetting)
	}
}

// listSettings godoc
// @Summary List settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]domain.Setting}
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /settings [get]
func (h *settingHandler) listSettings(c *gin.Context) {
	settings, err := h.settingService.ListSettings(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list settings")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(settings))
}

// getSetting godoc
// @Summary Get a setting
// @Tags settings
// @Produce json
// @Param name path string true "Setting name"
// @Success 200 {object} dto.Envelope{data=domain.Setting}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /settings/{name} [get]
func (h *settingHandler) getSetting(c *gin.Context) {
	setting, err := h.settingService.GetSetting(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, err, "Failed to retrieve setting")
		return
	}
	c.JSON(http.StatusOK, dto.OK(setting))
}

// setSetting godoc
// @Summary Create or update a setting
// @Tags settings
// @Accept json
// @Produce json
// @Param setting body dto.SettingRequest true "Setting"
// @Success 200 {object} dto.Envelope{data=domain.Setting}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /settings [post]
func (h *settingHandler) setSetting(c *gin.Context) {
	var req dto.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	h.writeSetting(c, req)
}

// putSetting godoc
// @Summary Create or update a setting by name
// @Tags settings
// @Accept json
// @Produce json
// @Param name path string true "Setting name"
// @Param setting body dto.SettingRequest true "Setting; the name field is taken from the path"
// @Success 200 {object} dto.Envelope{data=domain.Setting}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /settings/{name} [put]
func (h *settingHandler) putSetting(c *gin.Context) {
	var req dto.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	req.Name = c.Param("name")
	h.writeSetting(c, req)
}

func (h *settingHandler) writeSetting(c *gin.Context, req dto.SettingRequest) {
	setting, err := h.settingService.SetSetting(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to save setting")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Setting saved", slog.String("setting", setting.Name))
	c.JSON(http.StatusOK, dto.OK(setting))
}

// deleteSetting godoc
// @Summary Delete a setting
// @Tags settings
// @Produce json
// @Param name path string true "Setting name"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /settings/{name} [delete]
func (h *settingHandler) deleteSetting(c *gin.Context) {
	if err := h.settingService.DeleteSetting(c.Request.Context(), c.Param("name")); err != nil {
		h.respondError(c, err, "Failed to delete setting")
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil))
}

// listByCategory godoc
// @Summary List settings in a category
// @Tags settings
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} dto.Envelope{data=[]domain.Setting}
// @Security BearerAuth
// @Router /settings/category/{category} [get]
func (h *settingHandler) listByCategory(c *gin.Context) {
	settings, err := h.settingService.ListSettingsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.respondError(c, err, "Failed to list settings")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(settings))
}

// bulkSetSettings godoc
// @Summary Write several settings
// @Description Each item is written independently. 207 is returned when only some items succeed.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.BulkSettingsRequest true "Settings"
// @Success 200 {object} dto.Envelope{data=[]domain.BulkSettingResult}
// @Success 207 {object} dto.Envelope{data=[]domain.BulkSettingResult}
// @Failure 400 {object} dto.Envelope{data=[]domain.BulkSettingResult}
// @Security BearerAuth
// @Router /settings/bulk [post]
func (h *settingHandler) bulkSetSettings(c *gin.Context) {
	var req dto.BulkSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	results := h.settingService.BulkSetSettings(c.Request.Context(), req.Settings)
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	env := dto.OKList(results)
	status := http.StatusOK
	switch {
	case succeeded == 0:
		status = http.StatusBadRequest
		env.Success = false
		env.Error = "no settings were saved"
	case succeeded < len(results):
		status = http.StatusMultiStatus
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bulk settings write finished",
		slog.Int("requested", len(results)), slog.Int("succeeded", succeeded))
	c.JSON(status, env)
}

// initializeDefaults godoc
// @Summary Insert missing default settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.InitializeDefaultsResponse}
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /settings/initialize-defaults [post]
func (h *settingHandler) initializeDefaults(c *gin.Context) {
	n, err := h.settingService.InitializeDefaults(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to initialize default settings")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.InitializeDefaultsResponse{Inserted: n}))
}
