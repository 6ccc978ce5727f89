package checkout

import (
	"reflect"
	"strings"

	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Form holds the shipping fields. Phone and address are free text; only
// presence is checked.
type Form struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Comment string `json:"comment"`
}

func (f Form) normalized() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
		Comment: strings.TrimSpace(f.Comment),
	}
}

// Validate reports the missing mandatory fields as a validation error.
func (f Form) Validate() error {
	err := validate.Struct(f.normalized())
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "is required"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout form is incomplete").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout form is invalid")
}

// DirectPurchase is a "buy now" of one product that bypasses the cart.
type DirectPurchase struct {
	Product   catalog.Product
	Quantity  int
	VariantID string
}

func (d DirectPurchase) UnitPrice() int64 {
	return d.Product.UnitPrice(d.VariantID)
}

func (d DirectPurchase) LinePrice() int64 {
	return d.UnitPrice() * int64(d.Quantity)
}

func (d DirectPurchase) validate() error {
	if d.Product.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "direct purchase product is required")
	}
	if d.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "direct purchase quantity must be at least 1")
	}
	if d.VariantID != "" {
		if _, ok := d.Product.Variant(d.VariantID); !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown product variant").
				WithDetails(map[string]any{"product_id": d.Product.ID, "variant_id": d.VariantID})
		}
	}
	return nil
}
