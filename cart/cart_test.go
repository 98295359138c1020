package cart

import (
	"testing"
	"time"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// applyUpsert runs the filter/update pair against an in-memory collection
// with upsert semantics: a matched row gets $inc applied, a miss inserts a
// fresh row from the filter plus $inc and $setOnInsert.
func applyUpsert(rows map[string]*models.CartItem, filter, update bson.M) {
	key := filter["userId"].(string) + "/" + filter["productId"].(string)
	inc := update["$inc"].(bson.M)["quantity"].(int)

	if row, ok := rows[key]; ok {
		row.Quantity += inc
		return
	}
	rows[key] = &models.CartItem{
		UserID:    filter["userId"].(string),
		ProductID: filter["productId"].(string),
		Quantity:  inc,
		AddedAt:   update["$setOnInsert"].(bson.M)["addedAt"].(time.Time),
	}
}

func TestAddToCartIncrementsSingleRow(t *testing.T) {
	rows := map[string]*models.CartItem{}
	first := time.Now()

	filter, update := upsertSpec("usr_1", "prod_1", 2, first)
	applyUpsert(rows, filter, update)

	filter, update = upsertSpec("usr_1", "prod_1", 3, first.Add(time.Minute))
	applyUpsert(rows, filter, update)

	require.Len(t, rows, 1)
	row := rows["usr_1/prod_1"]
	assert.Equal(t, 5, row.Quantity)
	// The re-add must not reset the original add time.
	assert.Equal(t, first, row.AddedAt)
}

func TestAddToCartSeparateRowsPerProduct(t *testing.T) {
	rows := map[string]*models.CartItem{}
	now := time.Now()

	filter, update := upsertSpec("usr_1", "prod_1", 1, now)
	applyUpsert(rows, filter, update)
	filter, update = upsertSpec("usr_1", "prod_2", 1, now)
	applyUpsert(rows, filter, update)
	filter, update = upsertSpec("usr_2", "prod_1", 1, now)
	applyUpsert(rows, filter, update)

	assert.Len(t, rows, 3)
}
