package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SKU identifies a product stock-keeping unit. The cart and order services
// exchange numeric SKUs while guest carts keep whatever the catalog returned,
// so both JSON numbers and strings are accepted.
type SKU string

// ParseSKU trims and validates a SKU taken from a path or form value
func ParseSKU(raw string) (SKU, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("sku is required")
	}
	return SKU(raw), nil
}

func (s SKU) String() string { return string(s) }

// IsZero reports whether the SKU is empty
func (s SKU) IsZero() bool { return strings.TrimSpace(string(s)) == "" }

// Int64 returns the integer form required by the order items endpoint
func (s SKU) Int64() (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sku %q is not numeric: %w", string(s), err)
	}
	return value, nil
}

// MarshalJSON writes canonical integer SKUs as JSON numbers and anything
// else, including "007" or "+5", as a string so the value survives a round trip
func (s SKU) MarshalJSON() ([]byte, error) {
	if value, err := strconv.ParseInt(string(s), 10, 64); err == nil && strconv.FormatInt(value, 10) == string(s) {
		return []byte(string(s)), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts a JSON string or number
func (s *SKU) UnmarshalJSON(data []byte) error {
	value, err := decodeIdentifier(data)
	if err != nil {
		return fmt.Errorf("sku must be a string or number: %w", err)
	}
	*s = SKU(value)
	return nil
}

// ProductID identifies a catalog product. Like SKU it may arrive as a number or a string.
type ProductID string

func (p ProductID) String() string { return string(p) }

// UnmarshalJSON accepts a JSON string or number
func (p *ProductID) UnmarshalJSON(data []byte) error {
	value, err := decodeIdentifier(data)
	if err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*p = ProductID(value)
	return nil
}

func decodeIdentifier(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return "", err
		}
		return strings.TrimSpace(str), nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return "", err
	}
	return number.String(), nil
}
