package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	helper "github.com/tataton/roadgraph/pkg/http/router/routerhelper"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
}

// shortestPath godoc
//
//	@Summary		compute the shortest route between two coordinates
//	@Description	snap origin/destination to the road graph and run the requested search algorithm (dijkstra, astar, or bfs).
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			algorithm		query	string	false	"routing algorithm"	Enums(dijkstra, astar, bfs)	default(dijkstra)
//	@Produce		json
//	@Success		200	{object}	shortestPathResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}
	request.Algorithm = query.Get("algorithm")
	if request.Algorithm == "" {
		request.Algorithm = "dijkstra"
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	eta, dist, pathPolyline, routeCoords, visitedNodes, err := api.routingService.ShortestPath(
		request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, request.Algorithm)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(eta, dist, pathPolyline,
		routeCoords, visitedNodes)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
