package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/packets"
)

// HealthModule mounts the liveness probe.
func HealthModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/health", func(*gin.Context) (any, *api.APIError) {
			return packets.HealthResponse{Status: "ok"}, nil
		})
	})
}
