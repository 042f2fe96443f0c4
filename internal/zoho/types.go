package zoho

// Response envelopes for the accounting API. Every response carries a code
// (0 on success) and a message alongside the entity payload.

type Contact struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	CompanyName string `json:"company_name,omitempty"`
	ContactType string `json:"contact_type,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Status      string `json:"status,omitempty"`
}

type contactResponse struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Contact Contact `json:"contact"`
}

type contactsResponse struct {
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	Contacts    []Contact `json:"contacts"`
	PageContext struct {
		Total int `json:"total"`
	} `json:"page_context"`
}

type SalesOrderLineItem struct {
	ItemID      string  `json:"item_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
}

type SalesOrderParams struct {
	CustomerID      string               `json:"customer_id"`
	ReferenceNumber string               `json:"reference_number,omitempty"`
	Date            string               `json:"date"`
	LineItems       []SalesOrderLineItem `json:"line_items"`
	ShippingCharge  float64              `json:"shipping_charge,omitempty"`
	Discount        float64              `json:"discount,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

type salesOrderResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	SalesOrder struct {
		SalesOrderID     string `json:"salesorder_id"`
		SalesOrderNumber string `json:"salesorder_number"`
		Status           string `json:"status"`
	} `json:"salesorder"`
}

type InvoiceParams struct {
	CustomerID      string               `json:"customer_id"`
	ReferenceNumber string               `json:"reference_number,omitempty"`
	Date            string               `json:"date"`
	DueDate         string               `json:"due_date,omitempty"`
	Status          string               `json:"status,omitempty"`
	LineItems       []SalesOrderLineItem `json:"line_items"`
	ShippingCharge  float64              `json:"shipping_charge,omitempty"`
	Discount        float64              `json:"discount,omitempty"`
}

type invoiceResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Invoice struct {
		InvoiceID     string `json:"invoice_id"`
		InvoiceNumber string `json:"invoice_number"`
		Status        string `json:"status"`
	} `json:"invoice"`
}

type PaymentInvoice struct {
	InvoiceID     string  `json:"invoice_id"`
	AmountApplied float64 `json:"amount_applied"`
}

type CustomerPaymentParams struct {
	CustomerID      string           `json:"customer_id"`
	PaymentMode     string           `json:"payment_mode"`
	Amount          float64          `json:"amount"`
	Date            string           `json:"date"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	Invoices        []PaymentInvoice `json:"invoices"`
}

type CustomerPayment struct {
	PaymentID       string  `json:"payment_id"`
	PaymentMode     string  `json:"payment_mode"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	ReferenceNumber string  `json:"reference_number,omitempty"`
	CustomerID      string  `json:"customer_id,omitempty"`
	CustomerName    string  `json:"customer_name,omitempty"`
}

type customerPaymentResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Payment CustomerPayment `json:"payment"`
}

type customerPaymentsResponse struct {
	Code             int               `json:"code"`
	Message          string            `json:"message"`
	CustomerPayments []CustomerPayment `json:"customerpayments"`
	PageContext      struct {
		Total int `json:"total"`
	} `json:"page_context"`
}

type customerPaymentDetailResponse struct {
	Code            int             `json:"code"`
	Message         string          `json:"message"`
	CustomerPayment CustomerPayment `json:"customerpayment"`
}

type Item struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	SKU    string  `json:"sku,omitempty"`
	Status string  `json:"status,omitempty"`
}

type itemsResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Items   []Item `json:"items"`
}
