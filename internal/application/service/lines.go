package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/billing"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
)

// LineInput is one line item as typed into the billing form. Quantity and
// price arrive as raw text and go through the editor's parsing rules.
type LineInput struct {
	Name     string
	Quantity string
	Unit     string
	Price    string
	Category string
}

type lineSubmission struct {
	Name     string    `json:"name" validate:"required"`
	Quantity int       `json:"quantity" validate:"min=1"`
	Unit     enum.Unit `json:"unit" validate:"required"`
	Price    float64   `json:"price" validate:"gte=0"`
}

type saleSubmission struct {
	CustomerID string           `json:"customer_id" validate:"required"`
	Items      []lineSubmission `json:"items" validate:"required,min=1,dive"`
}

// buildLines replays form input through a billing editor so line totals are
// always derived server side. Unknown units are reported per line.
func buildLines(inputs []LineInput) ([]entity.LineItem, error) {
	editor := billing.NewEditor()
	var fields []apperror.FieldError

	for i, in := range inputs {
		if i > 0 {
			editor.Add()
		}
		err := fillLine(editor, i, in)
		switch {
		case errors.Is(err, enum.ErrUnknownUnit):
			fields = append(fields, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit", i),
				Message: "unit must be one of: " + unitList(),
			})
		case err != nil:
			return nil, fmt.Errorf("fill line %d: %w", i, err)
		}
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}
	return editor.Items(), nil
}

// fillLine copies one form line into editor line i, unit last
func fillLine(editor *billing.Editor, i int, in LineInput) error {
	updates := []struct {
		field billing.Field
		value string
	}{
		{billing.FieldName, strings.TrimSpace(in.Name)},
		{billing.FieldCategory, in.Category},
		{billing.FieldQuantity, in.Quantity},
		{billing.FieldPrice, in.Price},
		{billing.FieldUnit, in.Unit},
	}
	for _, u := range updates {
		if err := editor.Update(i, u.field, u.value); err != nil {
			return err
		}
	}
	return nil
}

// validateSale checks the fields a sale must carry before it is stored
func validateSale(customerID string, items []entity.LineItem) error {
	sub := saleSubmission{CustomerID: customerID, Items: make([]lineSubmission, len(items))}
	for i, item := range items {
		sub.Items[i] = lineSubmission{Name: item.Name, Quantity: item.Quantity, Unit: item.Unit, Price: item.Price}
	}
	return validateStruct(&sub)
}

func unitList() string {
	names := make([]string, len(enum.Units))
	for i, u := range enum.Units {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}
