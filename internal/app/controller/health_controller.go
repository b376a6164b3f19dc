package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/pkg/redis"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health reports database and cache reachability
// GET /health
func (ctrl *HealthController) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "ok"}

	sqlDB, err := ctrl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "unreachable"
	}

	switch {
	case !redis.Enabled():
		body["redis"] = "disabled"
	case redis.GetClient().Ping(c.Request.Context()).Err() != nil:
		body["redis"] = "unreachable"
	default:
		body["redis"] = "ok"
	}

	c.JSON(status, body)
}
