package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frispy/internal/service"
)

type cartLineReq struct {
	MenuItemID string `json:"menuItemId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

type cartReq struct {
	Items []cartLineReq `json:"items" binding:"required,min=1,dive"`
}

func (r cartReq) lines() []service.CartLine {
	out := make([]service.CartLine, 0, len(r.Items))
	for _, l := range r.Items {
		out = append(out, service.CartLine{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
	}
	return out
}

// @Summary Checkout a cart
// @Description Records a completed order and a sale with identical items, total and timestamp.
// @Tags sales
// @Accept json
// @Produce json
// @Param input body cartReq true "Cart"
// @Success 201 {object} service.CheckoutResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /checkout [post]
func (s *Server) checkout(c *gin.Context) {
	var req cartReq
	if !bindJSON(c, &req) {
		return
	}
	res, err := s.sales.Checkout(c, req.lines())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List sales
// @Description Without from/to returns the whole log in insertion order. Both bounds are inclusive.
// @Tags sales
// @Produce json
// @Param from query string false "RFC3339 start"
// @Param to query string false "RFC3339 end"
// @Success 200 {array} domain.SaleTransaction
// @Failure 400 {object} map[string]string
// @Router /sales [get]
func (s *Server) listSales(c *gin.Context) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		list, err := s.sales.List(c)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}
	if fromRaw == "" || toRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be given together"})
		return
	}
	from, err := time.Parse(time.RFC3339, fromRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := time.Parse(time.RFC3339, toRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}
	list, err := s.sales.InRange(c, from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get sale by id
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} domain.SaleTransaction
// @Failure 404 {object} map[string]string
// @Router /sales/{id} [get]
func (s *Server) getSale(c *gin.Context) {
	sale, err := s.sales.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// @Summary Delete sale
// @Tags sales
// @Param id path string true "Sale ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /sales/{id} [delete]
func (s *Server) deleteSale(c *gin.Context) {
	if err := s.sales.Delete(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
