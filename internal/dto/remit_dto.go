package dto

// RemitItem is one print-ready remit line. All numeric fields are already
// formatted (2 decimals, en-US thousands separators).
type RemitItem struct {
	Code        int64  `json:"code"`
	Name        string `json:"name"`
	Measurement string `json:"measurement"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TotalPrice  string `json:"totalPrice"`
	Discount    string `json:"discount"`
}

// RemitPresentation is the flat print-ready remit document computed from a
// stored order snapshot.
type RemitPresentation struct {
	RemitNumber    int64       `json:"remitNumber"`
	Client         string      `json:"client"`
	ClientNumber   int64       `json:"clientNumber"`
	Address        string      `json:"address"`
	PhoneNumber    string      `json:"phoneNumber"`
	DeliveryDate   string      `json:"deliveryDate"`
	Date           string      `json:"date"`
	Hour           string      `json:"hour"`
	Items          []RemitItem `json:"items"`
	AmountInLetter string      `json:"amountInLetter"`
	SubTotal       string      `json:"subTotal"`
	Total          string      `json:"total"`
	TotalArticles  int         `json:"totalArticles"`

	// Escalating payment reminders: +1, +8 and +16 days after delivery, at
	// 3%, 3% and 6% over the original total (non-compounding).
	FirstExpirationDate  string `json:"firstExpirationDate"`
	SecondExpirationDate string `json:"secondExpirationDate"`
	ThirdExpirationDate  string `json:"thirdExpirationDate"`
	FirstTotal           string `json:"firstTotal"`
	SecondTotal          string `json:"secondTotal"`
	ThirdTotal           string `json:"thirdTotal"`
}

// EmailRemitRequest asks the backend to email a remit PDF to a recipient.
type EmailRemitRequest struct {
	Email string `json:"email" validate:"required,email"`
}
