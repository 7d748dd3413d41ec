package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/karnikjan/EasyEvent/internal/graph"
)

// requestError answers a request that never reached the executor, in the
// GraphQL response shape.
func requestError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors": []gin.H{{"message": message}},
	})
}

// GraphQL serves POST /graphql with a JSON body.
func GraphQL(exec *graph.Executor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graph.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			requestError(c, "invalid request body: "+err.Error())
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			requestError(c, "must provide query string")
			return
		}

		c.JSON(http.StatusOK, exec.Execute(c.Request.Context(), req))
	}
}

// GraphQLQuery serves GET /graphql?query=...&variables=...&operationName=...
// Mutations are refused.
func GraphQLQuery(exec *graph.Executor) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := graph.Request{
			Query:         c.Query("query"),
			OperationName: c.Query("operationName"),
		}
		if strings.TrimSpace(req.Query) == "" {
			requestError(c, "must provide query string")
			return
		}
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				requestError(c, "variables must be a JSON object")
				return
			}
		}

		c.JSON(http.StatusOK, exec.ExecuteQueryOnly(c.Request.Context(), req))
	}
}
