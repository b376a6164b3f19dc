package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type CommunityController struct {
	communityService service.CommunityService
}

func NewCommunityController(communityService service.CommunityService) *CommunityController {
	return &CommunityController{communityService: communityService}
}

type CommunityRequest struct {
	Image string `json:"image" form:"image"`
}

// GET /community
func (ctrl *CommunityController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	images, err := ctrl.communityService.ListCommunity()
	if err != nil {
		respondServiceError(c, log, err, "list community")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"communities": images,
		"count":       len(images),
	})
}

// GET /community/:id
func (ctrl *CommunityController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "community")
	if !ok {
		return
	}

	image, err := ctrl.communityService.GetCommunityByID(id)
	if err != nil {
		respondServiceError(c, log, err, "get community")
		return
	}

	c.JSON(http.StatusOK, gin.H{"community": image})
}

// Create stores a gallery photo, from an uploaded "file" or an existing URL
// POST /community
func (ctrl *CommunityController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CommunityRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, log, err, "community creation")
		return
	}

	file, release, err := formFile(c, "file")
	if err != nil {
		invalidBody(c, log, err, "community creation")
		return
	}
	defer release()

	image, err := ctrl.communityService.CreateCommunity(c.Request.Context(), req.Image, file)
	if err != nil {
		respondServiceError(c, log, err, "create community")
		return
	}

	log.Info("Community image created successfully", map[string]interface{}{
		"community_id": image.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Community image created successfully",
		"community": image,
	})
}

// DELETE /community/:id
func (ctrl *CommunityController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "community")
	if !ok {
		return
	}

	if err := ctrl.communityService.DeleteCommunity(id); err != nil {
		respondServiceError(c, log, err, "delete community")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Community image deleted successfully"})
}
