package model

import "time"

// BasketItem is one `(product, color)` selection in a user's basket.  The
// pair is unique per basket; adding the same pair again is a no-op at the
// service level and rejected by a unique key at the storage level.
type BasketItem struct {
    ID          uint64    // basket_items.id
    BasketID    uint64    // basket_items.basket_id
    ProductID   uint64    // basket_items.product_id
    Color       string    // basket_items.color
    SelectedImg string    // basket_items.selected_img ("none" when the client sent nothing)
    CreatedAt   time.Time // basket_items.created_at
}

// Basket is the per-user container row.  Items live in basket_items.
type Basket struct {
    ID     uint64 // baskets.id
    UserID uint64 // baskets.user_id
}
