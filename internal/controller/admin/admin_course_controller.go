package admin

import (
	"net/http"
	"strconv"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/controller"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminCourseController struct {
	adminCourseService service.AdminCourseService
}

func NewAdminCourseController(adminCourseService service.AdminCourseService) *AdminCourseController {
	return &AdminCourseController{adminCourseService: adminCourseService}
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course definition"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/courses [post]
func (c *AdminCourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.adminCourseService.CreateCourse(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// AttachTest godoc
// @Summary (Admin) Attach a test to a course at a position
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param attachment body dto.AttachTestDTO true "Test and position"
// @Success 204 "attached"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id}/tests [post]
func (c *AdminCourseController) AttachTest(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid course ID format"})
		return
	}
	var req dto.AttachTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.adminCourseService.AttachTest(uint(courseID), req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// EnrollStudent godoc
// @Summary (Admin) Enroll a student in a course
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param enrollment body dto.EnrollStudentDTO true "Student to enroll"
// @Success 204 "enrolled"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id}/enrollments [post]
func (c *AdminCourseController) EnrollStudent(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid course ID format"})
		return
	}
	var req dto.EnrollStudentDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.adminCourseService.EnrollStudent(uint(courseID), req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
