// Package part provides the Part aggregate and the priced options attached to it.
//
// A Part is one physical item submitted for manufacture within a quotation.
// It owns its PartQuotes: the priced, lead-time-bound fulfilment options
// offered for it. At most one PartQuote is the part's selected quote and
// selecting another one replaces it.
//
// Parts are immutable once created except through UpdatablePart, a patch
// that carries only the fields allowed to change (replacement file, selected
// quote). Mutating methods return the patch so persistence writes exactly the
// changed columns.
package part
