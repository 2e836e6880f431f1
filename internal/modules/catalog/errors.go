package catalog

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidPromoCode = errors.New("invalid promo code")
	ErrPolicyNotFound   = errors.New("return policy not found")
)
