package models

import "github.com/aferchichi/stockshop/pkg/collection"

// CartEntry is one line of the session cart. Name, Price, and Image are
// cached display fields copied from the product at add time; UnitPrice for
// the eventual order line comes from Price.
type CartEntry struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Qty       int     `json:"qty"`
}

// Cart is the ordered list of entries held in the session. It has no
// durable identity; order placement converts it into an Order and clears it.
type Cart []CartEntry

// Add merges qty into an existing line for the same product, or appends a
// new line. qty below 1 is treated as 1.
func (c Cart) Add(entry CartEntry) Cart {
	if entry.Qty < 1 {
		entry.Qty = 1
	}
	for i := range c {
		if c[i].ProductID == entry.ProductID {
			c[i].Qty += entry.Qty
			return c
		}
	}
	return append(c, entry)
}

// Update sets the quantity of the line at index. qty <= 0 removes the line
// and compacts the remaining indices. Out-of-range indices are ignored.
func (c Cart) Update(index, qty int) Cart {
	if index < 0 || index >= len(c) {
		return c
	}
	if qty <= 0 {
		return c.Remove(index)
	}
	c[index].Qty = qty
	return c
}

// Remove drops the line at index, compacting the slice.
// Out-of-range indices are ignored.
func (c Cart) Remove(index int) Cart {
	if index < 0 || index >= len(c) {
		return c
	}
	return append(c[:index], c[index+1:]...)
}

// Total is the sum of qty times unit price across all lines.
func (c Cart) Total() float64 {
	return collection.Sum(c, func(e CartEntry) float64 {
		return float64(e.Qty) * e.Price
	})
}

// Quantity returns the quantity already in the cart for a product, zero if
// the product is absent.
func (c Cart) Quantity(productID uint) int {
	entry, ok := collection.First(c, func(e CartEntry) bool {
		return e.ProductID == productID
	})
	if !ok {
		return 0
	}
	return entry.Qty
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c) == 0 }
