package utils

import "github.com/gin-gonic/gin"

func setAlert(ctx *gin.Context, appName, message, param string) {
	ctx.Header("X-"+appName+"-alert", message)
	ctx.Header("X-"+appName+"-params", param)
}

// EntityCreationAlert tells the UI an entity was created.
func EntityCreationAlert(ctx *gin.Context, appName, entityName, param string) {
	setAlert(ctx, appName, entityName+".created", param)
}

// EntityUpdateAlert tells the UI an entity was updated.
func EntityUpdateAlert(ctx *gin.Context, appName, entityName, param string) {
	setAlert(ctx, appName, entityName+".updated", param)
}

// EntityDeletionAlert tells the UI an entity was deleted.
func EntityDeletionAlert(ctx *gin.Context, appName, entityName, param string) {
	setAlert(ctx, appName, entityName+".deleted", param)
}

// FailureAlert tells the UI a request was rejected with errorKey.
func FailureAlert(ctx *gin.Context, appName, entityName, errorKey string) {
	ctx.Header("X-"+appName+"-error", "error."+errorKey)
	ctx.Header("X-"+appName+"-params", entityName)
}
