package enums

import "fmt"

// ToastVariant selects how a client renders a notification.
type ToastVariant string

const (
	ToastVariantDefault     ToastVariant = "default"
	ToastVariantDestructive ToastVariant = "destructive"
)

var validToastVariants = []ToastVariant{
	ToastVariantDefault,
	ToastVariantDestructive,
}

// IsValid checks whether the variant matches the canonical enum.
func (v ToastVariant) IsValid() bool {
	for _, candidate := range validToastVariants {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseToastVariant converts raw strings into ToastVariant.
func ParseToastVariant(value string) (ToastVariant, error) {
	for _, candidate := range validToastVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid toast variant %q", value)
}
