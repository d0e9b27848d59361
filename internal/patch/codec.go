package patch

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Codec converts file bytes to text and back.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// NewCodec resolves an encoding label such as "utf-8" or "latin1".
func NewCodec(label string) (*Codec, error) {
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown file encoding %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("unknown file encoding %q: %w", label, err)
	}
	if name == "utf-8" {
		return &Codec{name: name}, nil
	}
	return &Codec{name: name, enc: enc}, nil
}

// Name returns the canonical encoding name.
func (c *Codec) Name() string {
	return c.name
}

// Decode converts raw file bytes to text.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts text back to file bytes.
func (c *Codec) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		return []byte(text), nil
	}
	return c.enc.NewEncoder().Bytes([]byte(text))
}
