package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/catering/gstbill/internal/application/invoicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/invoices", thaliBody()).Code)

	body := thaliBody()
	body["items"] = []map[string]any{
		{"description": "VEG THALI", "hsnCode": "996331", "quantity": 1, "rate": "100"},
		{"description": "Paneer Tikka", "hsnCode": "996331", "quantity": 1, "rate": "180"},
	}
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/invoices", body).Code)

	all := decode[invoicing.CatalogResponse](t, api.do(t, http.MethodGet, "/api/v1/item-catalog", nil))
	assert.ElementsMatch(t, []string{"veg thali", "lassi", "paneer tikka"}, all.Data.Items)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"pa", []string{"paneer tikka"}},
		{"  VEG", []string{"veg thali"}},
		{"v", []string{}},
		{"", []string{}},
		{"xyz", []string{}},
	}
	for _, tt := range tests {
		t.Run("prefix "+strconv.Quote(tt.prefix), func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/v1/item-catalog/suggestions?prefix="+url.QueryEscape(tt.prefix), nil)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[invoicing.CatalogResponse](t, w)
			assert.Equal(t, tt.want, resp.Data.Items)
		})
	}
}
