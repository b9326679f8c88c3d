package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreOperation_SplitsByResult(t *testing.T) {
	okBefore := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("find_one", "unit", "ok"))
	errBefore := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("find_one", "unit", "error"))

	RecordStoreOperation("find_one", "unit", nil, time.Millisecond)
	RecordStoreOperation("find_one", "unit", errors.New("down"), time.Millisecond)
	RecordStoreOperation("find_one", "unit", nil, time.Millisecond)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("find_one", "unit", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("find_one", "unit", "error")))
}

func TestRecordHttpRequest(t *testing.T) {
	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/unit", "200"))
	RecordHttpRequest("GET", "/unit", "200", 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/unit", "200")))
}
