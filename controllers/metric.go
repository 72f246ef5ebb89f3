// controllers/metric.go
package controllers

import (
	"net/http"

	"editorial-api/config"
	"editorial-api/services"

	"github.com/gin-gonic/gin"
)

func metricService() *services.MetricService {
	return services.NewMetricService(config.DB)
}

// RecordView counts a page view for the slug and returns the current
// counters. Counting is best-effort: the response is always 200 so a
// failed counter can never break the page that triggered it.
func RecordView(c *gin.Context) {
	metric := metricService().Increment(c.Param("slug"), services.FieldViews)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"views":     metric.Views,
		"downloads": metric.Downloads,
	})
}

// RecordDownload counts a manuscript download for the slug.
func RecordDownload(c *gin.Context) {
	metric := metricService().Increment(c.Param("slug"), services.FieldDownloads)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"views":     metric.Views,
		"downloads": metric.Downloads,
	})
}
