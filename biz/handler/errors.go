package handler

import (
	"context"
	"errors"

	"orders-hertz/biz/dal/db"
	"orders-hertz/biz/model"
	"orders-hertz/middleware"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// writeError maps validation errors to 422 and everything else to 500.
// Storage details are logged, not returned.
func writeError(ctx context.Context, c *app.RequestContext, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		details := verr.Fields
		if details == nil {
			details = []model.FieldError{}
		}
		c.JSON(consts.StatusUnprocessableEntity, utils.H{"error": verr.Error(), "details": details})
		return
	}

	hlog.CtxErrorf(ctx, "%s %s request_id=%s: %v",
		c.Method(), c.Path(), middleware.RequestID(c), err)
	msg := "internal server error"
	if errors.Is(err, db.ErrStorage) {
		msg = "storage unavailable"
	}
	c.JSON(consts.StatusInternalServerError, utils.H{"error": msg})
}
