package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
)

// Recovery turns a panic into a 500 response
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
					"request_id": GetRequestID(c),
					"method":     string(c.Method()),
					"path":       string(c.Path()),
					"panic":      fmt.Sprintf("%v", err),
				})

				log.Error("panic recovered",
					"stack", string(debug.Stack()),
				)

				c.JSON(consts.StatusInternalServerError, utils.H{
					"code":    "INTERNAL_ERROR",
					"message": "Internal server error",
				})

				// Abort request chain
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
