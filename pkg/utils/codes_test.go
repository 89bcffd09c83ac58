package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCustomerCode(t *testing.T) {
	re := regexp.MustCompile(`^CU\d{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, GenerateCustomerCode())
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	date := time.Date(2024, time.March, 9, 15, 0, 0, 0, time.UTC)
	no := GenerateInvoiceNumber(date)
	assert.Regexp(t, regexp.MustCompile(`^INV-20240309-[A-Z2-9]{6}$`), no)
	assert.NotEqual(t, no, GenerateInvoiceNumber(date))
}

func TestGenerateInvoiceNumber_SkipsAmbiguousCharacters(t *testing.T) {
	date := time.Date(2024, time.March, 9, 15, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^INV-20240309-[ABCDEFGHJKLMNPQRSTUVWXYZ2-9]{6}$`)
	for i := 0; i < 200; i++ {
		assert.Regexp(t, re, GenerateInvoiceNumber(date))
	}
}

func TestNormalizeCustomerCode(t *testing.T) {
	assert.Equal(t, "CU123456", NormalizeCustomerCode("  cu123456 "))
	assert.Equal(t, "", NormalizeCustomerCode("   "))
}
