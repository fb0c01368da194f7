package admin

import (
	"strconv"

	"github.com/groupbuy-next/internal/http/response"
	"github.com/groupbuy-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.ProductService.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.ProductService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品并整体替换款式
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	product, err := h.ProductService.Update(uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}
	if err := h.ProductService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RecountSold 按未取消订单重新盘点已售数
func (h *Handler) RecountSold(c *gin.Context) {
	if err := h.ProductService.RecountSold(); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"recounted": true})
}
