package util

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	appDb "github.com/kabsu-me/kabsu-be/db"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	DbHTTPErr = HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
)

type HandlerOpts struct {
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts a Handler into a gin.HandlerFunc rendering the
// standard {success, data} / {success, message} envelope.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
	})
}

func BuildDbHTTPErr(err error) *HTTPError {
	if appDb.IsDupKeyErr(err) {
		return &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "already exists",
		}
	}
	log.Println("database error occurred", err)
	return &DbHTTPErr
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func BuildNotFoundHTTPErr(entity string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: entity + " not found",
	}
}

func BuildForbiddenHTTPErr() *HTTPError {
	return &HTTPError{
		Status:  http.StatusForbidden,
		Message: "not allowed",
	}
}
