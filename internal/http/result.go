package httpapi

import (
	"errors"
	"net/http"

	"dhulbeeg-backend/internal/repository"
)

// Response uniform envelope for every endpoint. Count is set on list
// responses only.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(data any) Response {
	return Response{Success: true, Data: data}
}

func okMessage(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func okList(count int, data any) Response {
	return Response{Success: true, Count: &count, Data: data}
}

func fail(message string) Response {
	return Response{Success: false, Message: message}
}

// writeRepoError maps the repository failure taxonomy onto HTTP statuses.
// Anything unrecognized is a storage failure and surfaces as 500 with a
// generic message.
func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, fail(err.Error()))
	case errors.Is(err, repository.ErrConflict):
		writeJSON(w, http.StatusConflict, fail(err.Error()))
	case errors.Is(err, repository.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, fail(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
	}
}
