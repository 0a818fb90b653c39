package v1

import (
	"net/http"
	"strconv"

	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers the job routes owned by this service
func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	r.POST("/jobs/:jobId/view", handler.IncrementView)
}

// IncrementView godoc
// @Summary      Increment a job's view counter
// @Description  Bumps the counter and broadcasts the new count to all live connections
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId}/view [post]
func (h *JobHandler) IncrementView(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	count, err := h.jobUC.IncrementView(c, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "View count incremented successfully", gin.H{"newViewCount": count})
}
