package cart

// ValidationError is a rejected cart operation. Message is shown to the
// shopper as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrProductNotFound = &ValidationError{Message: "Product not found"}
	ErrInvalidPrice    = &ValidationError{Message: "Invalid product price"}
	ErrInvalidQuantity = &ValidationError{Message: "Invalid quantity"}
	ErrInvalidCartItem = &ValidationError{Message: "Invalid cart item"}
	ErrItemNotFound    = &ValidationError{Message: "Item not found in cart"}
)
