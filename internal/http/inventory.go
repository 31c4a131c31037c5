package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

type inventoryItemReq struct {
	Name        string `json:"name" binding:"required"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	MinQuantity int    `json:"minQuantity" binding:"gte=0"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
}

func (r inventoryItemReq) toDomain(id string) domain.InventoryItem {
	return domain.InventoryItem{
		ID:          id,
		Name:        r.Name,
		Quantity:    r.Quantity,
		MinQuantity: r.MinQuantity,
		Unit:        r.Unit,
		Category:    r.Category,
		Supplier:    r.Supplier,
	}
}

// inventoryItemResp adds the derived stock status.
type inventoryItemResp struct {
	domain.InventoryItem
	Status domain.StockStatus `json:"status"`
}

func inventoryResp(it domain.InventoryItem) inventoryItemResp {
	return inventoryItemResp{InventoryItem: it, Status: it.Status()}
}

func inventoryList(items []domain.InventoryItem) []inventoryItemResp {
	out := make([]inventoryItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, inventoryResp(it))
	}
	return out
}

type quantityReq struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// @Summary List inventory
// @Description Items are ordered by quantity/minQuantity, most depleted first.
// @Tags inventory
// @Produce json
// @Param q query string false "Matches name, category or supplier"
// @Param category query string false "Exact category"
// @Param status query string false "all, low or in"
// @Success 200 {array} inventoryItemResp
// @Failure 400 {object} map[string]string
// @Router /inventory [get]
func (s *Server) listInventory(c *gin.Context) {
	f := repository.InventoryFilter{Query: c.Query("q"), Category: c.Query("category")}
	switch c.Query("status") {
	case "", "all":
		f.Stock = repository.StockAll
	case "low":
		f.Stock = repository.StockLow
	case "in":
		f.Stock = repository.StockIn
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}
	list, err := s.inventory.List(c, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryList(list))
}

// @Summary Create inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param input body inventoryItemReq true "Inventory item"
// @Success 201 {object} inventoryItemResp
// @Failure 400 {object} map[string]string
// @Router /inventory [post]
func (s *Server) createInventoryItem(c *gin.Context) {
	var req inventoryItemReq
	if !bindJSON(c, &req) {
		return
	}
	it, err := s.inventory.Create(c, req.toDomain(""))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inventoryResp(*it))
}

// @Summary Inventory stats
// @Tags inventory
// @Produce json
// @Success 200 {object} analytics.InventoryStats
// @Router /inventory/stats [get]
func (s *Server) inventoryStats(c *gin.Context) {
	st, err := s.inventory.Stats(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Inventory categories
// @Tags inventory
// @Produce json
// @Success 200 {array} string
// @Router /inventory/categories [get]
func (s *Server) inventoryCategories(c *gin.Context) {
	cats, err := s.inventory.Categories(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// @Summary Get inventory item by id
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} inventoryItemResp
// @Failure 404 {object} map[string]string
// @Router /inventory/{id} [get]
func (s *Server) getInventoryItem(c *gin.Context) {
	it, err := s.inventory.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryResp(*it))
}

// @Summary Update inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory item ID"
// @Param input body inventoryItemReq true "Inventory item"
// @Success 200 {object} inventoryItemResp
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /inventory/{id} [put]
func (s *Server) updateInventoryItem(c *gin.Context) {
	var req inventoryItemReq
	if !bindJSON(c, &req) {
		return
	}
	it, err := s.inventory.Update(c, req.toDomain(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryResp(*it))
}

// @Summary Delete inventory item
// @Tags inventory
// @Param id path string true "Inventory item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /inventory/{id} [delete]
func (s *Server) deleteInventoryItem(c *gin.Context) {
	if err := s.inventory.Delete(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add one unit
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} inventoryItemResp
// @Failure 404 {object} map[string]string
// @Router /inventory/{id}/increment [post]
func (s *Server) incrementStock(c *gin.Context) {
	it, err := s.inventory.Increment(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryResp(*it))
}

// @Summary Remove one unit
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} inventoryItemResp
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /inventory/{id}/decrement [post]
func (s *Server) decrementStock(c *gin.Context) {
	it, err := s.inventory.Decrement(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryResp(*it))
}

// @Summary Set quantity
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory item ID"
// @Param input body quantityReq true "New quantity"
// @Success 200 {object} inventoryItemResp
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /inventory/{id}/quantity [put]
func (s *Server) setStockQuantity(c *gin.Context) {
	var req quantityReq
	if !bindJSON(c, &req) {
		return
	}
	it, err := s.inventory.SetQuantity(c, c.Param("id"), *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryResp(*it))
}
