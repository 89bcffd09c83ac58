package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const (
	customerCodePrefix = "CU"
	invoicePrefix      = "INV"
	invoiceAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateCustomerCode returns a code of the form CU123456
func GenerateCustomerCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 1_000_000)
	}
	return customerCodePrefix + leftPad(n.String(), 6, '0')
}

// GenerateInvoiceNumber returns INV-YYYYMMDD-XXXXXX for the given sale date
func GenerateInvoiceNumber(date time.Time) string {
	return invoicePrefix + "-" + date.Format("20060102") + "-" + randomString(6, invoiceAlphabet)
}

// NormalizeCustomerCode trims and upper-cases a code typed by a user
func NormalizeCustomerCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func randomString(n int, alphabet string) string {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			idx = big.NewInt(time.Now().UnixNano() % max.Int64())
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String()
}

func leftPad(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}
