package public

import "github.com/lumistore/storefront/internal/provider"

// Handler 店面/用户侧接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
