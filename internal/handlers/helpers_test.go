package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func muxSetVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func timeOffset(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
