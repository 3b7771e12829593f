// internal/pdf/rtl_test.go
package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsRTL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty", text: "", want: false},
		{name: "ascii", text: "hello world", want: false},
		{name: "digits", text: "12345", want: false},
		{name: "hebrew", text: "שלום", want: true},
		{name: "arabic", text: "مرحبا", want: true},
		{name: "hebrew presentation forms", text: "שׁ", want: true},
		{name: "mixed", text: "invoice שלום", want: true},
		{name: "latin accents", text: "café", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsRTL(tt.text))
		})
	}
}

func TestNormalizeRTL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "ltr passes through", text: "hello", want: "hello"},
		{name: "empty passes through", text: "", want: ""},
		{name: "hebrew reversed", text: "שלום", want: "םולש"},
		{name: "mixed reversed whole", text: "אב12", want: "21בא"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRTL(tt.text))
		})
	}
}

func TestNormalizeRTL_Involution(t *testing.T) {
	text := "שלום עולם"
	assert.Equal(t, text, NormalizeRTL(NormalizeRTL(text)))
}
