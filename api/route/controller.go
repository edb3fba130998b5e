package routeapi

import (
	"net/http"

	"github.com/HeartlessDevil29/Labirint/api/apierr"
	"github.com/HeartlessDevil29/Labirint/api/identity"
	mazeapi "github.com/HeartlessDevil29/Labirint/api/maze"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RouteController manages route recording and mazes built from routes.
type RouteController struct {
	recorder i.RouteRecorder
}

// NewRouteController initializes a RouteController.
func NewRouteController(r i.RouteRecorder) *RouteController {
	return &RouteController{
		recorder: r,
	}
}

// RegisterPublic registers public routes.
func (rc *RouteController) RegisterPublic(route *gin.RouterGroup) {
	routes := route.Group("/routes")
	{
		routes.POST("", rc.start)
		routes.GET("/:ID", rc.route)
		routes.POST("/:ID/maze", rc.generateMaze)
	}
}

// RegisterProtected registers routes that need the route's token.
func (rc *RouteController) RegisterProtected(route *gin.RouterGroup) {
	routes := route.Group("/routes")
	{
		routes.POST("/:ID/fixes", rc.appendFixes)
		routes.POST("/:ID/finish", rc.finish)
	}
}

// start opens a new route.
func (rc *RouteController) start(ctx *gin.Context) {
	id, token, err := rc.recorder.Start(ctx.Request.Context())
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &StartResponse{ID: id.String(), Token: token})
}

// route returns a live or archived route.
func (rc *RouteController) route(ctx *gin.Context) {
	ID, ok := routeID(ctx)
	if !ok {
		return
	}

	route, err := rc.recorder.Route(ctx.Request.Context(), ID)
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewRouteResponse(route))
}

// generateMaze builds a maze from a route's fixes.
func (rc *RouteController) generateMaze(ctx *gin.Context) {
	ID, ok := routeID(ctx)
	if !ok {
		return
	}

	var request MazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := rc.recorder.GenerateMaze(ctx.Request.Context(), ID, *request.Entry, *request.Exit, request.Seed)
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, mazeapi.NewSessionResponse(session))
}

// appendFixes buffers fixes for a route the caller owns.
func (rc *RouteController) appendFixes(ctx *gin.Context) {
	ID, ok := ownedRouteID(ctx)
	if !ok {
		return
	}

	var request AppendRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := rc.recorder.Append(ctx.Request.Context(), ID, request.Fixes)
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, &AppendResponse{Count: count})
}

// finish archives a route the caller owns.
func (rc *RouteController) finish(ctx *gin.Context) {
	ID, ok := ownedRouteID(ctx)
	if !ok {
		return
	}

	route, err := rc.recorder.Finish(ctx.Request.Context(), ID)
	if err != nil {
		apierr.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewRouteResponse(route))
}

func routeID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
		return uuid.Nil, false
	}
	return ID, true
}

// ownedRouteID parses the route ID and checks it against the token's claim.
func ownedRouteID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, ok := routeID(ctx)
	if !ok {
		return uuid.Nil, false
	}
	claimed, ok := identity.ClaimedRouteID(ctx)
	if !ok || claimed != ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this route"})
		return uuid.Nil, false
	}
	return ID, true
}
