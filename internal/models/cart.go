package models

import "time"

// CartItem is one staged entry in a user's cart, keyed by (product, shade).
type CartItem struct {
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductImage string    `json:"productImage,omitempty"`
	Price        int64     `json:"price"` // minor currency units, captured when added
	Quantity     int       `json:"quantity"`
	ShadeID      string    `json:"shadeId,omitempty"`
	ShadeName    string    `json:"shade,omitempty"`
	SKU          string    `json:"productSku,omitempty"`
	AddedAt      time.Time `json:"addedAt"`
}

type Cart struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FindItem returns the index of the entry matching (productID, shadeID), or
// -1 when absent. Distinct shades of the same product are distinct entries.
func (c *Cart) FindItem(productID, shadeID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.ShadeID == shadeID {
			return i
		}
	}
	return -1
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
