package pricing

import "github.com/Gameminde/Zinouchawebsie/models"

// ItemKey identifies a cart line.
type ItemKey struct {
	ProductID string
	Size      string
	Color     string
}

func KeyOf(item models.CartItem) ItemKey {
	return ItemKey{ProductID: item.ProductID, Size: item.Size, Color: item.Color}
}

// ClampQuantity enforces the quantity floor of 1.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// AddItem merges item into items. An existing key gets the quantities summed.
func AddItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	item.Quantity = ClampQuantity(item.Quantity)
	out := make([]models.CartItem, len(items), len(items)+1)
	copy(out, items)

	key := KeyOf(item)
	for i := range out {
		if KeyOf(out[i]) == key {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

// SetQuantity changes the quantity of the line with key. Unknown keys leave items unchanged.
func SetQuantity(items []models.CartItem, key ItemKey, quantity int) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	for i := range out {
		if KeyOf(out[i]) == key {
			out[i].Quantity = ClampQuantity(quantity)
		}
	}
	return out
}

// RemoveItem drops the line with key. Unknown keys leave items unchanged.
func RemoveItem(items []models.CartItem, key ItemKey) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if KeyOf(item) != key {
			out = append(out, item)
		}
	}
	return out
}

// ItemCount sums the quantities.
func ItemCount(items []models.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
