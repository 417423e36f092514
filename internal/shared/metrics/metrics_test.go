package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/purchase-orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/purchase-orders/:id", "200"))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/purchase-orders/"+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/purchase-orders/:id", "200"))
	assert.Equal(t, before+2, after)
}

func TestRecordTransition(t *testing.T) {
	c := workflowTransitions.WithLabelValues("purchase_order", "PENDING_APPROVAL", "APPROVED")
	before := testutil.ToFloat64(c)

	RecordTransition("purchase_order", "PENDING_APPROVAL", "APPROVED")

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	RecordOutbox(true)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "procurement_outbox_events_total")
}
