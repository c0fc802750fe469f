package controllers

import (
	"poshak-shop/models"
	"poshak-shop/repositories"
	"poshak-shop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PreferenceController struct {
	store  *repositories.LocalStore
	logger *zap.Logger
}

func NewPreferenceController(store *repositories.LocalStore, logger *zap.Logger) *PreferenceController {
	return &PreferenceController{store: store, logger: logger}
}

// @Summary Get preferences
// @Description Get the stored UI preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} models.Response
// @Router /preferences [get]
func (ctrl *PreferenceController) GetPreferences(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "message": utils.MsgPreferencesLoaded, "data": ctrl.store.LoadPreferences()})
}

// @Summary Set theme
// @Description Switch the stored theme between light and dark
// @Tags Preferences
// @Accept json
// @Produce json
// @Param body body models.ThemeRequest true "Theme"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /preferences/theme [put]
func (ctrl *PreferenceController) SetTheme(c *gin.Context) {
	var req models.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgThemeInvalid})
		return
	}

	prefs := ctrl.store.LoadPreferences()
	prefs.Theme = req.Theme
	ctrl.store.SavePreferences(prefs)

	ctrl.logger.Info("theme changed", zap.String("theme", prefs.Theme))
	c.JSON(200, gin.H{"success": true, "message": utils.MsgThemeSaved, "data": prefs})
}
