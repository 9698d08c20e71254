package layers

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input    string
		expected Address
		ok       bool
	}{
		{"10.0.0.5", Address{10, 0, 0, 5}, true},
		{"192.168.0.1", Address{192, 168, 0, 1}, true},
		{"255.255.255.255", Address{255, 255, 255, 255}, true},
		{"0.0.0.0", Address{}, true},
		{"256.0.0.1", Address{}, false},
		{"1.2.3", Address{}, false},
		{"1.2.3.4.5", Address{}, false},
		{"a.b.c.d", Address{}, false},
		{"1.2.-3.4", Address{}, false},
		{"+1.2.3.4", Address{}, false},
		{"1.2.3.-0", Address{}, false},
		{"1.2. 3.4", Address{}, false},
		{"1..3.4", Address{}, false},
		{"", Address{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if !tt.ok {
				if !errors.Is(err, ErrAddressFormat) {
					t.Fatalf("expected ErrAddressFormat, got %v", err)
				}
				var addrErr *AddressError
				if !errors.As(err, &addrErr) || addrErr.Addr != tt.input {
					t.Errorf("expected an AddressError for %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if addr != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, addr)
			}
			if addr.String() != tt.input {
				t.Errorf("expected %s, got %s", tt.input, addr.String())
			}
		})
	}
}
