package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

type menuItemReq struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

func (r menuItemReq) toDomain(id string) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: r.Name, Price: r.Price, Category: r.Category, Image: r.Image}
}

// @Summary List menu items
// @Tags menu
// @Produce json
// @Param category query string false "Exact category"
// @Param q query string false "Name contains"
// @Success 200 {array} domain.MenuItem
// @Router /menu [get]
func (s *Server) listMenu(c *gin.Context) {
	f := repository.MenuFilter{Category: c.Query("category"), NameSubstring: c.Query("q")}
	list, err := s.menu.List(c, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param input body menuItemReq true "Menu item"
// @Success 201 {object} domain.MenuItem
// @Failure 400 {object} map[string]string
// @Router /menu [post]
func (s *Server) createMenuItem(c *gin.Context) {
	var req menuItemReq
	if !bindJSON(c, &req) {
		return
	}
	m, err := s.menu.Create(c, req.toDomain(""))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary Menu categories
// @Tags menu
// @Produce json
// @Success 200 {array} string
// @Router /menu/categories [get]
func (s *Server) menuCategories(c *gin.Context) {
	cats, err := s.menu.Categories(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// @Summary Get menu item by id
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} domain.MenuItem
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [get]
func (s *Server) getMenuItem(c *gin.Context) {
	m, err := s.menu.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary Update menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param input body menuItemReq true "Menu item"
// @Success 200 {object} domain.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [put]
func (s *Server) updateMenuItem(c *gin.Context) {
	var req menuItemReq
	if !bindJSON(c, &req) {
		return
	}
	m, err := s.menu.Update(c, req.toDomain(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary Delete menu item
// @Tags menu
// @Param id path string true "Menu item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [delete]
func (s *Server) deleteMenuItem(c *gin.Context) {
	if err := s.menu.Delete(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
