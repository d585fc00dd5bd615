// Package web serves the single-page browser client.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed assets/index.html assets/static
var assets embed.FS

type Handler struct {
	index  []byte
	static fs.FS
}

func New() (*Handler, error) {
	index, err := assets.ReadFile("assets/index.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return nil, err
	}
	return &Handler{index: index, static: static}, nil
}

func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.StaticFS("/static", http.FS(h.static))
}
