package v1

import (
	"net/http"
	"strconv"

	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application lifecycle routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	jobs := r.Group("/jobs")
	{
		jobs.POST("/apply", handler.Apply)
		jobs.GET("/check-application", handler.CheckApplication)
		jobs.GET("/:jobId/applicants", handler.ListApplicants)
		jobs.GET("/:jobId/applicants/count", handler.CountApplicants)
		jobs.PATCH("/:jobId/stage/:userId", handler.AdvanceStage)
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit a job application; duplicate applications are rejected
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ApplyInput  true  "Application data"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /jobs/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.Apply(c, req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application submitted successfully", nil)
}

// CheckApplication godoc
// @Summary      Check application and schedule status
// @Description  Whether the user applied to the job, and any scheduled interview
// @Tags         applications
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Param        jobId   query     int     true  "Job ID"
// @Success      200     {object}  response.Response{data=domain.ApplicationStatus}
// @Failure      400     {object}  response.Response
// @Router       /jobs/check-application [get]
func (h *ApplicationHandler) CheckApplication(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Query("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}
	userID := c.Query("userId")

	status, err := h.applicationUC.CheckApplication(c, jobID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status retrieved", status)
}

// ListApplicants godoc
// @Summary      List a job's applicants
// @Description  All applicants on a job with their stage progress, in application order
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Applicant}
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId}/applicants [get]
func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	applicants, err := h.applicationUC.ListApplicants(c, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants retrieved", applicants)
}

// CountApplicants godoc
// @Summary      Count a job's applicants
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId}/applicants/count [get]
func (h *ApplicationHandler) CountApplicants(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	count, err := h.applicationUC.CountApplicants(c, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicant count retrieved", gin.H{"totalApplicants": count})
}

// AdvanceStageRequest is the request payload for advancing a candidate's stage
type AdvanceStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// AdvanceStage godoc
// @Summary      Advance a candidate's recruiting stage
// @Description  Adds the stage to the applicant's progress and the job's stage set; "hire" bumps the recruited counter once per candidate
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId   path      int                  true  "Job ID"
// @Param        userId  path      string               true  "Candidate user ID"
// @Param        body    body      AdvanceStageRequest  true  "Stage"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /jobs/{jobId}/stage/{userId} [patch]
func (h *ApplicationHandler) AdvanceStage(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}
	userID := c.Param("userId")

	var req AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.AdvanceStage(c, jobID, userID, req.Stage); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Stage updated successfully", nil)
}
