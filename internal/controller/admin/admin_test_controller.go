package admin

import (
	"net/http"
	"strconv"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/controller"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// CreateTest godoc
// @Summary (Admin) Create a test with its full section/question/option tree
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTestService.CreateTest(req)
	if err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest failed")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetTest godoc
// @Summary (Admin) Get a test with its full content, including answer keys
// @Tags Admin - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id} [get]
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: "Invalid test ID format"})
		return
	}
	resp, err := c.adminTestService.GetTest(uint(testID))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListTests godoc
// @Summary (Admin) List tests with section counts
// @Tags Admin - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Router /admin/tests [get]
func (c *AdminTestController) ListTests(ctx *gin.Context) {
	resp, err := c.adminTestService.ListTests()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
