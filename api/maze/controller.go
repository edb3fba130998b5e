package mazeapi

import (
	"net/http"

	"github.com/HeartlessDevil29/Labirint/api/apierr"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves maze generation and the current maze session.
type MazeController struct {
	mazes i.MazeSessionManager
}

// NewMazeController initializes a MazeController.
func NewMazeController(m i.MazeSessionManager) *MazeController {
	return &MazeController{
		mazes: m,
	}
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.GET("/current", mc.current)
		mazes.GET("/:ID", mc.byID)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

// generate handles maze generation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := mc.mazes.Generate(ctx.Request.Context(), i.GenerateRequest{
		Path:             request.Path,
		Entry:            *request.Entry,
		Exit:             *request.Exit,
		ResolutionMeters: request.ResolutionMeters,
		Seed:             request.Seed,
	})
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, NewSessionResponse(session))
}

// current returns the current maze session.
func (mc *MazeController) current(ctx *gin.Context) {
	session, err := mc.mazes.Current()
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewSessionResponse(session))
}

// byID returns the current maze session if it has the requested ID.
func (mc *MazeController) byID(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	session, err := mc.mazes.ByID(ID)
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewSessionResponse(session))
}
