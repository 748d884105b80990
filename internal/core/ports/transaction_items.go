package ports

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/domain/model/quotation"
)

// TransactionItem is one write of a Transaction. The set of items is closed:
// only the types in this file implement it.
type TransactionItem interface {
	// Describe names the item in errors and logs.
	Describe() string

	transactionItem()
}

// CreateProject inserts a new project.
type CreateProject struct {
	Project *project.Project
}

// LockProject permanently locks an existing project.
type LockProject struct {
	ProjectID kernel.UUID
	At        time.Time
}

// CheckProjectUnlocked holds only while the project exists and is unlocked.
// It writes nothing.
type CheckProjectUnlocked struct {
	ProjectID kernel.UUID
}

// CreateQuotation inserts a new quotation.
type CreateQuotation struct {
	Quotation *quotation.Quotation
}

// UpdateQuotationStatus moves a quotation from From to To and holds only while
// the stored status is still From.
type UpdateQuotationStatus struct {
	QuotationID kernel.UUID
	From        quotation.Status
	To          quotation.Status
	At          time.Time
}

// CheckQuotationStatus holds only while the stored status is one of Allowed.
// It writes nothing.
type CheckQuotationStatus struct {
	QuotationID kernel.UUID
	Allowed     []quotation.Status
}

// CreatePart inserts a part without its quotes.
type CreatePart struct {
	Part *part.Part
}

// UpdatePart applies a patch to a part of the patch's quotation.
type UpdatePart struct {
	Patch part.UpdatablePart
	At    time.Time
}

// CheckPartSelection holds only while the part of QuotationID still has
// SelectedPartQuoteID selected. It writes nothing.
type CheckPartSelection struct {
	QuotationID         kernel.UUID
	PartID              kernel.UUID
	SelectedPartQuoteID kernel.UUID
}

// CreatePartQuote inserts a quote of an existing part.
type CreatePartQuote struct {
	Quote *part.PartQuote
}

// CreateOrder inserts an order and fails when one with the same id exists.
type CreateOrder struct {
	Order *order.Order
}

// UpdateOrderStatus moves an order from From to To and holds only while the
// stored status is still From. Other columns are left untouched.
type UpdateOrderStatus struct {
	OrderID kernel.UUID
	From    order.Status
	To      order.Status
	At      time.Time
}

// SetOrderPayout stores the payout of an existing order. The status is left
// untouched.
type SetOrderPayout struct {
	OrderID kernel.UUID
	Payout  kernel.Money
	At      time.Time
}

func (i CreateProject) Describe() string {
	return "create project " + i.Project.ID().String()
}

func (i LockProject) Describe() string {
	return "lock project " + i.ProjectID.String()
}

func (i CheckProjectUnlocked) Describe() string {
	return "check project " + i.ProjectID.String() + " unlocked"
}

func (i CreateQuotation) Describe() string {
	return "create quotation " + i.Quotation.ID().String()
}

func (i UpdateQuotationStatus) Describe() string {
	return fmt.Sprintf("update quotation %s status %s -> %s", i.QuotationID, i.From, i.To)
}

func (i CheckQuotationStatus) Describe() string {
	allowed := make([]string, 0, len(i.Allowed))
	for _, s := range i.Allowed {
		allowed = append(allowed, s.String())
	}
	return fmt.Sprintf("check quotation %s status in [%s]", i.QuotationID, strings.Join(allowed, ", "))
}

func (i CreatePart) Describe() string {
	return "create part " + i.Part.ID().String()
}

func (i UpdatePart) Describe() string {
	return "update part " + i.Patch.PartID.String()
}

func (i CheckPartSelection) Describe() string {
	return fmt.Sprintf("check part %s selects quote %s", i.PartID, i.SelectedPartQuoteID)
}

func (i CreatePartQuote) Describe() string {
	return "create part quote " + i.Quote.ID().String()
}

func (i CreateOrder) Describe() string {
	return "create order " + i.Order.ID().String()
}

func (i UpdateOrderStatus) Describe() string {
	return fmt.Sprintf("update order %s status %s -> %s", i.OrderID, i.From, i.To)
}

func (i SetOrderPayout) Describe() string {
	return fmt.Sprintf("set order %s payout %s", i.OrderID, i.Payout)
}

func (CreateProject) transactionItem()         {}
func (LockProject) transactionItem()           {}
func (CheckProjectUnlocked) transactionItem()  {}
func (CreateQuotation) transactionItem()       {}
func (UpdateQuotationStatus) transactionItem() {}
func (CheckQuotationStatus) transactionItem()  {}
func (CreatePart) transactionItem()            {}
func (UpdatePart) transactionItem()            {}
func (CheckPartSelection) transactionItem()    {}
func (CreatePartQuote) transactionItem()       {}
func (CreateOrder) transactionItem()           {}
func (UpdateOrderStatus) transactionItem()     {}
func (SetOrderPayout) transactionItem()        {}
