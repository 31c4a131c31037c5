package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frispy/internal/analytics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// dashboardResp is the dashboard plus display strings for the summary cards.
type dashboardResp struct {
	analytics.Dashboard
	Display dashboardDisplay `json:"display"`
}

type dashboardDisplay struct {
	Daily         string `json:"daily"`
	Weekly        string `json:"weekly"`
	Monthly       string `json:"monthly"`
	DailyCount    string `json:"dailyCount"`
	WeeklyCount   string `json:"weeklyCount"`
	MonthlyCount  string `json:"monthlyCount"`
	GeneratedDate string `json:"generatedDate"`
	GeneratedTime string `json:"generatedTime"`
}

func newDashboardResp(d analytics.Dashboard) dashboardResp {
	return dashboardResp{
		Dashboard: d,
		Display: dashboardDisplay{
			Daily:         analytics.FormatCurrencyCompact(d.Daily.Total),
			Weekly:        analytics.FormatCurrencyCompact(d.Weekly.Total),
			Monthly:       analytics.FormatCurrencyCompact(d.Monthly.Total),
			DailyCount:    analytics.FormatNumber(float64(d.Daily.Count)),
			WeeklyCount:   analytics.FormatNumber(float64(d.Weekly.Count)),
			MonthlyCount:  analytics.FormatNumber(float64(d.Monthly.Count)),
			GeneratedDate: analytics.FormatDate(d.GeneratedAt),
			GeneratedTime: analytics.FormatTime(d.GeneratedAt),
		},
	}
}

// @Summary Dashboard
// @Description Summaries, rankings, charts, peak hours and low stock computed from one snapshot.
// @Tags analytics
// @Produce json
// @Success 200 {object} dashboardResp
// @Router /analytics/dashboard [get]
func (s *Server) dashboard(c *gin.Context) {
	d, err := s.reports.Dashboard(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDashboardResp(d))
}

// @Summary Sales summary for a window
// @Description daily is the calendar day, weekly the last 7 days, monthly the calendar month.
// @Tags analytics
// @Produce json
// @Param window path string true "daily, weekly or monthly"
// @Success 200 {object} analytics.Summary
// @Failure 400 {object} map[string]string
// @Router /analytics/summary/{window} [get]
func (s *Server) summary(c *gin.Context) {
	sum, err := s.reports.Summary(c, c.Param("window"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary Best sellers
// @Tags analytics
// @Produce json
// @Param limit query int false "Number of items, default 5"
// @Param window query string false "all, daily, weekly or monthly"
// @Success 200 {array} analytics.BestSeller
// @Failure 400 {object} map[string]string
// @Router /analytics/best-sellers [get]
func (s *Server) bestSellers(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	list, err := s.reports.BestSellers(c, limit, c.Query("window"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Sales per day
// @Description One bucket per day, oldest first, ending today. Empty days are included.
// @Tags analytics
// @Produce json
// @Param days query int false "Number of days, default 7"
// @Success 200 {array} analytics.DayBucket
// @Failure 400 {object} map[string]string
// @Router /analytics/sales-by-day [get]
func (s *Server) salesByDay(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}
	buckets, err := s.reports.SalesByDay(c, days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// @Summary Peak hours
// @Description All 24 hours, busiest first.
// @Tags analytics
// @Produce json
// @Success 200 {array} analytics.HourBucket
// @Router /analytics/peak-hours [get]
func (s *Server) peakHours(c *gin.Context) {
	hours, err := s.reports.PeakHours(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

// @Summary Low stock items
// @Tags analytics
// @Produce json
// @Success 200 {array} inventoryItemResp
// @Router /analytics/low-stock [get]
func (s *Server) lowStock(c *gin.Context) {
	items, err := s.reports.LowStock(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryList(items))
}

// @Summary Export sales report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /reports/sales.xlsx [get]
func (s *Server) exportSales(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.reports.ExportXLSX(c, &buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "sales-report.xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// @Summary Load sample data
// @Description Replaces menu, inventory and sales with generated sample data.
// @Tags data
// @Produce json
// @Success 201 {object} service.SeedResult
// @Router /data/seed [post]
func (s *Server) seedData(c *gin.Context) {
	res, err := s.state.Reseed(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Clear all data
// @Tags data
// @Success 204
// @Router /data [delete]
func (s *Server) clearData(c *gin.Context) {
	if err := s.state.ClearAll(c); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
