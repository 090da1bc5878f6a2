// Package global holds the process-wide web server handle used by the main
// signal loop.
package global

import (
	"context"
)

var webServer WebServer

// WebServer is the subset of the server the main loop needs.
type WebServer interface {
	Start() error
	Stop() error
	GetCtx() context.Context
}

func SetWebServer(s WebServer) {
	webServer = s
}

func GetWebServer() WebServer {
	return webServer
}
