package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tataton/roadgraph/pkg/util"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *routingAPI) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message

	if err := api.writeJSON(w, status, resp, nil); err != nil {
		api.log.Error("failed writing error response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *routingAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// getStatusCode pick the http status from the domain error code.
func (api *routingAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *util.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Code() {
		case util.ErrBadParamInput:
			api.BadRequestResponse(w, r, err)
		case util.ErrNotFound:
			api.NotFoundResponse(w, r, err)
		default:
			api.ServerErrorResponse(w, r, err)
		}
		return
	}
	api.ServerErrorResponse(w, r, err)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := errors.New(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
