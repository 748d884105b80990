package part

import "marketplace/internal/core/domain/model/kernel"

// UpdatablePart is a patch for an existing part. Nil fields are left unchanged.
type UpdatablePart struct {
	PartID              kernel.UUID
	QuotationID         kernel.UUID
	File                *File
	SelectedPartQuoteID *kernel.UUID
}

// IsEmpty reports whether the patch changes nothing.
func (u UpdatablePart) IsEmpty() bool {
	return u.File == nil && u.SelectedPartQuoteID == nil
}
