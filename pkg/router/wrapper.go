package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := gctx.Request.Context()
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)

		var err error
		for _, middleware := range router.befores {
			ctx, err = middleware(ctx)
			if err != nil {
				gctx.JSON(http.StatusOK, newErrorResponse(err))
				return
			}
		}

		var req Request
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		case http.MethodPost:
			// Multipart bodies (proof uploads) carry their fields as form
			// values and the file is read from the request directly.
			if strings.HasPrefix(gctx.ContentType(), "multipart/form-data") {
				err = gctx.ShouldBind(&req)
			} else {
				err = gctx.ShouldBindJSON(&req)
			}
		}
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			gctx.JSON(http.StatusOK, newErrorResponse(
				errorx.New(errorx.BadRequest, "Cannot parse the request")))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			gctx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}
