package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/controllers"
	"github.com/kabsu-me/kabsu-be/util"
)

// AddTaxonomyRoutes exposes the campus tree for signup and browse flows.
// Served from the controller cache, no auth required.
func AddTaxonomyRoutes(group *gin.RouterGroup, taxonomy *controllers.TaxonomyController) {
	group.GET("/campuses", util.HandlerWrapper(func(c *gin.Context) (interface{}, *util.HTTPError) {
		return gin.H{
			"campuses": taxonomy.Tree(),
		}, nil
	}, &util.HandlerOpts{}))
}
