package v1

import (
	"net/http"

	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleUC domain.ScheduleUsecase
}

// NewScheduleHandler registers interview scheduling routes
func NewScheduleHandler(r *gin.RouterGroup, scheduleUC domain.ScheduleUsecase) {
	handler := &ScheduleHandler{scheduleUC: scheduleUC}

	schedules := r.Group("/schedules")
	{
		schedules.POST("", handler.Replace)
		schedules.GET("/candidate/:candidateId", handler.ListForCandidate)
		schedules.GET("/recruiter/:recruiterId", handler.ListForRecruiter)
	}
}

// Replace godoc
// @Summary      Create or replace an interview schedule
// @Description  Overwrites any existing schedule for the same job and candidate
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ScheduleInput  true  "Schedule data"
// @Success      200   {object}  response.Response{data=domain.Schedule}
// @Failure      400   {object}  response.Response
// @Router       /schedules [post]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req domain.ScheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	schedule, err := h.scheduleUC.Replace(c, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Schedule created", schedule)
}

// ListForCandidate godoc
// @Summary      List a candidate's upcoming schedules
// @Description  Future-dated schedules only, sorted by date then start time
// @Tags         schedules
// @Produce      json
// @Param        candidateId  path      string  true  "Candidate user ID"
// @Success      200          {object}  response.Response{data=[]domain.Schedule}
// @Router       /schedules/candidate/{candidateId} [get]
func (h *ScheduleHandler) ListForCandidate(c *gin.Context) {
	schedules, err := h.scheduleUC.ListForCandidate(c, c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Schedules retrieved", schedules)
}

// ListForRecruiter godoc
// @Summary      List a recruiter's upcoming schedules
// @Description  Future-dated schedules only, sorted by date then start time
// @Tags         schedules
// @Produce      json
// @Param        recruiterId  path      string  true  "Recruiter user ID"
// @Success      200          {object}  response.Response{data=[]domain.Schedule}
// @Router       /schedules/recruiter/{recruiterId} [get]
func (h *ScheduleHandler) ListForRecruiter(c *gin.Context) {
	schedules, err := h.scheduleUC.ListForRecruiter(c, c.Param("recruiterId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Schedules retrieved", schedules)
}
