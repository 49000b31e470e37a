package resources

// Request shapes for the custom Odoo addon API. Field names follow the
// addon's contract; x_care_id everywhere is the host record's external id.

const (
	PartnerTypePerson  = "person"
	PartnerTypeCompany = "company"
)

const (
	PartnerStatusActive  = "active"
	PartnerStatusRetired = "retired"
)

// DefaultState is stamped on partners when neither the facility nor the
// organization carries one.
const DefaultState = "kerala"

type PartnerData struct {
	Name        string `json:"name" validate:"required"`
	XCareId     string `json:"x_care_id" validate:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	State       string `json:"state"`
	PartnerType string `json:"partner_type" validate:"required,oneof=person company"`
	Agent       bool   `json:"agent"`
	Status      string `json:"status,omitempty"`
}

const UserTypePublic = "public"

type UserData struct {
	XCareId     string      `json:"x_care_id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Login       string      `json:"login" validate:"required"`
	Email       string      `json:"email"`
	UserType    string      `json:"user_type"`
	Phone       string      `json:"phone"`
	State       string      `json:"state"`
	PartnerData PartnerData `json:"partner_data"`
}

type CategoryData struct {
	CategoryName  string `json:"category_name" validate:"required"`
	ParentXCareId string `json:"parent_x_care_id"`
	XCareId       string `json:"x_care_id"`
}

type TaxData struct {
	TaxName       string  `json:"tax_name"`
	TaxPercentage float64 `json:"tax_percentage"`
}

type ProductData struct {
	ProductName string       `json:"product_name" validate:"required"`
	XCareId     string       `json:"x_care_id" validate:"required"`
	Cost        float64      `json:"cost"`
	MRP         float64      `json:"mrp"`
	Category    CategoryData `json:"category"`
	Taxes       []TaxData    `json:"taxes,omitempty"`
	HSN         string       `json:"hsn,omitempty"`
	Status      string       `json:"status" validate:"required"`
}

type DiscountGroup struct {
	XCareId string `json:"x_care_id"`
	Name    string `json:"name"`
}

const (
	DiscountTypeAmount = "amount"
	DiscountTypeFactor = "factor"
)

type InvoiceDiscount struct {
	Name          string        `json:"name"`
	DiscountGroup DiscountGroup `json:"discount_group"`
	DiscountType  string        `json:"discount_type"`
	Rate          float64       `json:"rate"`
	DiscAmt       float64       `json:"disc_amt"`
}

type InvoiceItem struct {
	ProductData ProductData       `json:"product_data"`
	Quantity    string            `json:"quantity"`
	SalePrice   string            `json:"sale_price"`
	FreeQty     string            `json:"free_qty"`
	XCareId     string            `json:"x_care_id" validate:"required"`
	AgentId     string            `json:"agent_id,omitempty"`
	Discounts   []InvoiceDiscount `json:"discounts,omitempty"`
}

const (
	BillTypeCustomer = "customer"
	BillTypeVendor   = "vendor"
)

type AccountMoveRequest struct {
	XCareId          string        `json:"x_care_id" validate:"required"`
	BillType         string        `json:"bill_type" validate:"required,oneof=customer vendor"`
	InvoiceDate      string        `json:"invoice_date" validate:"required"`
	DueDate          string        `json:"due_date" validate:"required"`
	PartnerData      PartnerData   `json:"partner_data"`
	InvoiceItems     []InvoiceItem `json:"invoice_items"`
	Reason           string        `json:"reason"`
	XIdentifier      string        `json:"x_identifier,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty"`
}

type AccountMoveReturnRequest struct {
	XCareId string `json:"x_care_id" validate:"required"`
	Reason  string `json:"reason"`
}

const (
	JournalCash   = "cash"
	JournalBank   = "bank"
	JournalCard   = "card"
	JournalCredit = "credit" // Care of Accounts (charity/sponsor payments)
)

const (
	PaymentModeSend    = "send"
	PaymentModeReceive = "receive"
)

const CustomerTypeCustomer = "customer"

type BillCounterData struct {
	XCareId     string `json:"x_care_id" validate:"required"`
	CashierId   string `json:"cashier_id" validate:"required"`
	CounterName string `json:"counter_name"`
}

type PaymentRequest struct {
	XCareId        string          `json:"x_care_id" validate:"required"`
	JournalXCareId string          `json:"journal_x_care_id"`
	Amount         float64         `json:"amount"`
	JournalInput   string          `json:"journal_input" validate:"required,oneof=cash bank card credit"`
	PaymentDate    string          `json:"payment_date" validate:"required"`
	PaymentMode    string          `json:"payment_mode" validate:"required,oneof=send receive"`
	PartnerData    PartnerData     `json:"partner_data"`
	CustomerType   string          `json:"customer_type"`
	CounterData    BillCounterData `json:"counter_data"`
	BankReference  string          `json:"bank_reference,omitempty"`
	// Which charity/fund pays. Required when JournalInput is credit.
	PaymentMethodLineId *int `json:"payment_method_line_id,omitempty"`
}

type PaymentCancelRequest struct {
	XCareId string `json:"x_care_id" validate:"required"`
	Reason  string `json:"reason"`
}
