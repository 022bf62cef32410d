package model

import "time"

// Product is a catalog entry.  The catalog is read-only from the basket's
// perspective; only brand and type rows are created through this API.
type Product struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    Price     uint32    `json:"price"`
    BrandID   uint64    `json:"brandId"`
    TypeID    uint64    `json:"typeId"`
    Img       string    `json:"img"`
    Colors    []string  `json:"colors"`
    CreatedAt time.Time `json:"createdAt"`
}

// Brand is a manufacturer entry used by the catalog filter.
type Brand struct {
    ID   uint64 `json:"id"`
    Name string `json:"name"`
}

// ProductType is a category entry used by the catalog filter.  Named
// ProductType rather than Type to avoid shadowing the builtin notion.
type ProductType struct {
    ID   uint64 `json:"id"`
    Name string `json:"name"`
}
