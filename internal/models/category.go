package models

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryRent           Category = "Rent"
	CategoryShopping       Category = "Shopping"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryUtilities      Category = "Utilities"
	CategoryOther          Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryShopping,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryEducation,
	CategoryUtilities,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PaymentMethod is one of the fixed ways an expense can be paid.
type PaymentMethod string

const (
	PaymentUPI        PaymentMethod = "UPI"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentCash       PaymentMethod = "Cash"
	PaymentNetBanking PaymentMethod = "Net Banking"
	PaymentOther      PaymentMethod = "Other"
)

var PaymentMethods = []PaymentMethod{
	PaymentUPI,
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentCash,
	PaymentNetBanking,
	PaymentOther,
}

func (p PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods {
		if p == known {
			return true
		}
	}
	return false
}
