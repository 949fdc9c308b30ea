// Package response writes the remote API's envelopes: {data, meta} on
// success, {errors:[{message}]} on failure, bare 204 for deletions.
package response

import "github.com/gin-gonic/gin"

func Data(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

func DataWithMeta(c *gin.Context, statusCode int, data, meta any) {
	c.JSON(statusCode, gin.H{
		"data": data,
		"meta": meta,
	})
}

func Error(c *gin.Context, statusCode int, messages ...string) {
	errs := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, gin.H{"message": m})
	}
	c.AbortWithStatusJSON(statusCode, gin.H{
		"errors":     errs,
		"statusCode": statusCode,
	})
}
