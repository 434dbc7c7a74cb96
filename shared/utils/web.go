package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/hoots/shared/errors"
	"github.com/itchan-dev/hoots/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var withCode *errors.ErrorWithStatusCode
	if stderrors.As(err, &withCode) {
		http.Error(w, withCode.Message, withCode.StatusCode)
		return
	}
	var storageErr *errors.StorageError
	if stderrors.As(err, &storageErr) {
		logger.Log.Error("storage failure", "error", storageErr.Err)
		http.Error(w, "Storage unavailable, try again later", http.StatusInternalServerError)
		return
	}
	// default error is 500
	logger.Log.Error("unhandled error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not json", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
