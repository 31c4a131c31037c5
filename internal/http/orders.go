package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frispy/internal/domain"
)

type createOrderReq struct {
	Items  []cartLineReq `json:"items" binding:"required,min=1,dive"`
	Status string        `json:"status" binding:"omitempty,orderstatus"`
}

type orderStatusReq struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// @Summary List orders
// @Description Newest first.
// @Tags orders
// @Produce json
// @Param status query string false "pending, preparing, completed or cancelled"
// @Param today query bool false "Only orders placed today"
// @Success 200 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	today := false
	if v := c.Query("today"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today"})
			return
		}
		today = b
	}
	status := domain.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	var (
		list []domain.Order
		err  error
	)
	if today {
		list, err = s.orders.TodaysOrders(c)
		if err == nil && status != "" {
			list = filterStatus(list, status)
		}
	} else {
		list, err = s.orders.ListOrders(c, status)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func filterStatus(list []domain.Order, status domain.OrderStatus) []domain.Order {
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if !bindJSON(c, &req) {
		return
	}
	o, err := s.orders.CreateOrder(c, cartReq{Items: req.Items}.lines(), domain.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Delete order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [delete]
func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orders.DeleteOrder(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Move order to a new status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body orderStatusReq true "Target status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [post]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req orderStatusReq
	if !bindJSON(c, &req) {
		return
	}
	o, err := s.orders.UpdateStatus(c, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
