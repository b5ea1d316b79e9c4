package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_WhereDoesNotAlias(t *testing.T) {
	base := From(CollectionProperties).Where("ownerId", OpEqual, "u1")
	a := base.Where("status", OpEqual, "Sold")
	b := base.Where("status", OpEqual, "Listed")

	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "Sold", a.Filters[1].Value)
	assert.Equal(t, "Listed", b.Filters[1].Value)
	assert.Equal(t, CollectionProperties, b.Collection)
}
