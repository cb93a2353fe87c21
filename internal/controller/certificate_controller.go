package controller

import (
	"course_academy_backend/internal/service"
	"course_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CertificateController 证书接口
type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// MarkArtifactRequest 证书文件地址
// swagger:model MarkArtifactRequest
type MarkArtifactRequest struct {
	DownloadURL string `json:"downloadUrl" binding:"required"`
}

// Issue godoc
// @Summary 申请课程证书
// @Description 同一课程重复申请返回已签发的证书
// @Tags 证书
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 400 {object} util.Response "未完成课程"
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/certificate [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	cert, err := c.CertificateService.CreateCertificateRecord(ctx.Request.Context(), session.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}

// ListMine godoc
// @Summary 我的证书
// @Tags 证书
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	certs, err := c.CertificateService.GetCertificatesForUser(ctx.Request.Context(), session.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// MarkArtifactReady godoc
// @Summary 登记证书文件
// @Description 供外部生成服务回写下载地址
// @Tags 证书
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param certificateId path string true "证书ID"
// @Param request body MarkArtifactRequest true "下载地址"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/admin/certificates/{certificateId}/artifact [put]
func (c *CertificateController) MarkArtifactReady(ctx *gin.Context) {
	var req MarkArtifactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert, err := c.CertificateService.MarkArtifactReady(ctx.Request.Context(), ctx.Param("certificateId"), req.DownloadURL)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}
