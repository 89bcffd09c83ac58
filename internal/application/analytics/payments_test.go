package analytics

import (
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentFixtures() []entity.Sale {
	mk := func(invoice, customer string, status enum.PaymentStatus, total float64) entity.Sale {
		s := sale(customer, time.Now(), total)
		s.InvoiceNumber = invoice
		s.PaymentStatus = status
		return s
	}
	return []entity.Sale{
		mk("INV-20240601-AAAAAA", "CU100001", enum.PaymentStatusPaid, 100),
		mk("INV-20240602-BBBBBB", "CU100002", enum.PaymentStatusPending, 200),
		mk("INV-20240603-CCCCCC", "CU100001", enum.PaymentStatusOverdue, 50),
	}
}

func TestFilterPayments(t *testing.T) {
	sales := paymentFixtures()

	assert.Len(t, FilterPayments(sales, PaymentFilter{}), 3)
	assert.Len(t, FilterPayments(sales, PaymentFilter{Status: "all"}), 3)
	assert.Len(t, FilterPayments(sales, PaymentFilter{Search: "cu100001"}), 2)
	assert.Len(t, FilterPayments(sales, PaymentFilter{Search: "bbbb"}), 1)

	got := FilterPayments(sales, PaymentFilter{Search: "CU100001", Status: "overdue"})
	require.Len(t, got, 1)
	assert.Equal(t, "INV-20240603-CCCCCC", got[0].InvoiceNumber)

	assert.Empty(t, FilterPayments(sales, PaymentFilter{Search: "nothing"}))
}

func TestSummarizePayments(t *testing.T) {
	s := SummarizePayments(paymentFixtures(), PaymentFilter{Status: StatusAll})

	assert.Equal(t, 3, s.Totals.Count)
	assert.Equal(t, 350.0, s.Totals.Total)
	assert.Equal(t, 100.0, s.Totals.Paid)
	assert.Equal(t, 200.0, s.Totals.Pending)
	assert.Equal(t, 50.0, s.Totals.Overdue)
}
