package viewport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewportCalculations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_calculations_total",
		Help: "The total number of viewports calculated",
	})
	viewportErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_errors_total",
		Help: "The total number of viewport calculations rejected due to invalid input",
	})
	viewportZoomClamped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_zoom_clamped_total",
		Help: "The total number of viewports whose fitted zoom was clamped to the zoom range",
	})
	viewportCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_cache_hits_total",
		Help: "The total number of hits on the viewport cache",
	})
	viewportCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_cache_misses_total",
		Help: "The total number of misses on the viewport cache",
	})
	viewportCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_cache_evictions_total",
		Help: "The total number of evictions from the viewport cache",
	})
	transformerCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viewport_transformer_cache_misses_total",
		Help: "The total number of coordinate transformations created",
	})
)
