// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/configurable-tables/pkg/slug"
)

func TestFrom(t *testing.T) {
	assert.Equal(t, "cafe-creme", slug.From("Café  Crème"))
	assert.Equal(t, "a-b", slug.From("--a__b--"))
}

func TestFromIdentifier(t *testing.T) {
	tests := map[string]string{
		"CustomerTable":      "customer-table",
		"customer":           "customer",
		"VIPCustomerTable":   "v-i-p-customer-table",
		"Customer_Table":     "customer-table",
		"OrderLineItemTable": "order-line-item-table",
	}

	for input, want := range tests {
		assert.Equal(t, want, slug.FromIdentifier(input), input)
	}
}
