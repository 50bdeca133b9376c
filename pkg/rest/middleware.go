package rest

import "github.com/gin-gonic/gin"

// Middleware scopes a gin handler to a router group. The group "*" attaches
// the handler to the whole engine instead of a single group.
type Middleware struct {
	Handler gin.HandlerFunc
	Group   string
}

func NewMiddleware(group string, handler gin.HandlerFunc) Middleware {
	return Middleware{
		Group:   group,
		Handler: handler,
	}
}
