package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type RegionHandler interface {
	InvalidateCache(w http.ResponseWriter, r *http.Request)
}

type regionHandlerImpl struct {
	cache region.ReferenceCache
}

func NewRegionHandler(cache region.ReferenceCache) RegionHandler {
	return &regionHandlerImpl{cache: cache}
}

// InvalidateCache implements RegionHandler. Master data calls this after editing regions.
func (h *regionHandlerImpl) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.cache.Invalidate()
	response.SuccessWithMessage(w, "Region cache invalidated", nil)
}
