// Package mazeapi handles maze generation and retrieval over HTTP.
package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves the maze routes.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze controller requires a maze service")
	}
	return &MazeController{mazeService: ms}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("", mc.recent)
		mazes.GET("/:ID", mc.byID)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.DELETE("/:ID", mc.delete)
	}
}

// create generates a maze owned by the caller.
func (mc *MazeController) create(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.mazeService.Create(ctx, owner, request.Level, request.Seed)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(m))
}

// byID returns a maze. With ?cells=true the grid is included as cell state names.
func (mc *MazeController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	m, err := mc.mazeService.ByID(ctx, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := newMazeResponse(m)
	if withCells, _ := strconv.ParseBool(ctx.Query("cells")); withCells {
		grid, err := m.Grid()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "stored maze is corrupt"})
			return
		}
		response.Cells = cellNames(grid)
	}

	ctx.JSON(http.StatusOK, response)
}

// recent lists the newest mazes.
func (mc *MazeController) recent(ctx *gin.Context) {
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	mazes, err := mc.mazeService.Recent(ctx, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := &ListResponse{Mazes: make([]*MazeResponse, 0, len(mazes))}
	for _, m := range mazes {
		response.Mazes = append(response.Mazes, newMazeResponse(m))
	}
	ctx.JSON(http.StatusOK, response)
}

// delete removes a maze owned by the caller.
func (mc *MazeController) delete(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	if err := mc.mazeService.Delete(ctx, owner, id); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// writeError maps service errors to HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidLevel), errors.Is(err, maze.ErrLevelTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	case errors.Is(err, i.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func cellNames(m *maze.Maze) [][]string {
	grid := m.Grid()
	names := make([][]string, len(grid))
	for r, line := range grid {
		names[r] = make([]string, len(line))
		for c, cell := range line {
			names[r][c] = cell.String()
		}
	}
	return names
}
