package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/pkg/helpers"
)

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

// respondPage writes a page of items. page and size are the 1-based values
// the offset was computed from.
func respondPage(ctx *gin.Context, items interface{}, total int64, page, size int) {
	respond(ctx, http.StatusOK, dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "")
}

func queryInt(ctx *gin.Context, name string) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func queryInt64Ptr(ctx *gin.Context, name string) *int64 {
	v, err := strconv.ParseInt(ctx.Query(name), 10, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func verificationStatusQuery(ctx *gin.Context) *models.VerificationStatus {
	switch s := models.VerificationStatus(strings.ToUpper(ctx.Query("status"))); s {
	case models.VerificationPending, models.VerificationVerified, models.VerificationRejected:
		return &s
	}
	return nil
}

func jafStatusQuery(ctx *gin.Context) *models.JAFStatus {
	switch s := models.JAFStatus(strings.ToUpper(ctx.Query("status"))); s {
	case models.JAFPendingReview, models.JAFApproved, models.JAFRejected:
		return &s
	}
	return nil
}

func jafFilter(ctx *gin.Context) (models.JAFFilter, int, int) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := models.JAFFilter{
		Status: jafStatusQuery(ctx),
		Search: strings.TrimSpace(ctx.Query("search")),
		Offset: offset,
		Limit:  limit,
	}
	switch js := models.JobStatus(strings.ToUpper(ctx.Query("jobStatus"))); js {
	case models.JobOpen, models.JobClosed, models.JobCancelled:
		filter.JobStatus = &js
	}
	switch ft := models.FormType(strings.ToUpper(ctx.Query("formType"))); ft {
	case models.FormJNF, models.FormINF:
		filter.FormType = &ft
	}
	return filter, page, size
}

func attachment(ctx *gin.Context, filename string) {
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}
