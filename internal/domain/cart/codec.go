package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// formatVersion is written into every persisted cart
const formatVersion = 1

var (
	// ErrUnreadableCart means the top-level structure could not be decoded
	ErrUnreadableCart = errors.New("unreadable cart data")
	// ErrUnsupportedVersion means the payload was written by a newer format
	ErrUnsupportedVersion = errors.New("unsupported cart format version")
)

type persistedCart struct {
	Version int    `json:"version"`
	Open    bool   `json:"open"`
	Lines   []Line `json:"lines"`
}

type rawCart struct {
	Version int               `json:"version"`
	Open    bool              `json:"open"`
	Lines   []json.RawMessage `json:"lines"`
}

// RejectedLine describes a persisted line dropped during decoding
type RejectedLine struct {
	Index  int
	Reason string
}

// Encode serialises the cart into its persisted form
func Encode(c Cart) (string, error) {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.Marshal(persistedCart{
		Version: formatVersion,
		Open:    c.Open,
		Lines:   lines,
	})
	if err != nil {
		return "", fmt.Errorf("marshal cart failed: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted cart. Lines that cannot be decoded or that are
// invalid are dropped and reported; the rest of the cart is kept. An error
// is returned only when the top-level structure is unusable.
func Decode(data string) (Cart, []RejectedLine, error) {
	trimmed := bytes.TrimSpace([]byte(data))
	if len(trimmed) == 0 {
		return Cart{}, nil, ErrUnreadableCart
	}

	if trimmed[0] != '{' {
		return Cart{}, nil, ErrUnreadableCart
	}

	var raw rawCart
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Cart{}, nil, fmt.Errorf("%w: %v", ErrUnreadableCart, err)
	}

	if raw.Version != formatVersion {
		return Cart{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, raw.Version)
	}

	result := Cart{Open: raw.Open, Lines: make([]Line, 0, len(raw.Lines))}
	var rejected []RejectedLine
	seen := make(map[string]bool, len(raw.Lines))

	for i, rawLine := range raw.Lines {
		var line Line
		if err := json.Unmarshal(rawLine, &line); err != nil {
			rejected = append(rejected, RejectedLine{Index: i, Reason: err.Error()})
			continue
		}
		if reason := validateLine(line); reason != "" {
			rejected = append(rejected, RejectedLine{Index: i, Reason: reason})
			continue
		}
		if seen[line.ID] {
			rejected = append(rejected, RejectedLine{Index: i, Reason: "duplicate line id"})
			continue
		}
		seen[line.ID] = true
		result.Lines = append(result.Lines, line)
	}

	return result, rejected, nil
}

func validateLine(line Line) string {
	switch {
	case line.ID == "":
		return "missing line id"
	case line.Product.ID == "":
		return "missing product id"
	case line.Product.Price <= 0:
		return "non-positive product price"
	case line.Quantity < 1:
		return "quantity below one"
	default:
		return ""
	}
}
