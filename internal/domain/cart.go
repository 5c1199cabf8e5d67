package domain

import "time"

// Cart is a mutable collection of line items identified by an opaque
// client-supplied token. A cart always exists once referenced: reads and
// writes create it on first use, and there is no deletion path for the cart
// itself.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product's quantity within a specific cart. Identity is the
// composite (ID, CartID): the same product may appear in different carts.
// Price is a minor-unit snapshot taken at add-time and immutable thereafter.
type CartItem struct {
	ID          string    `json:"id"`
	CartID      string    `json:"cart_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// TotalItems returns the sum of quantities across all items; 0 for an empty cart.
func (c *Cart) TotalItems() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// SubtotalAmount returns the sum of price*quantity across all items in minor
// units; 0 for an empty cart.
func (c *Cart) SubtotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// FindItemIndex returns the index of the item with the given id, or -1.
func (c *Cart) FindItemIndex(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
