package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreatePartsAndQuotesCommandIsNotConstructed = errors.New(
	"CreatePartsAndQuotesCommand must be created via NewCreatePartsAndQuotesCommand constructor",
)

// PartSubmission is one uploaded model file with the price options quoted for it.
type PartSubmission struct {
	File         part.File
	PriceOptions []part.PriceOption
}

// CreatePartsAndQuotesCommand submits files to a Draft quotation. Every file
// becomes a Part and every price option a PartQuote of that part.
//
// Example:
//
//	option, _ := part.NewPriceOption(price, 3)
//	cmd, err := NewCreatePartsAndQuotesCommand(clientID, projectID, quotationID, []PartSubmission{
//	    {File: file, PriceOptions: []part.PriceOption{option}},
//	})
type CreatePartsAndQuotesCommand struct { //nolint:recvcheck //using for validation
	clientID    kernel.UUID
	projectID   kernel.UUID
	quotationID kernel.UUID
	submissions []PartSubmission

	guard guard.ConstructorGuard
}

func NewCreatePartsAndQuotesCommand(
	clientID, projectID, quotationID kernel.UUID,
	submissions []PartSubmission,
) (CreatePartsAndQuotesCommand, error) {
	cmd := CreatePartsAndQuotesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		clientID.Validate(),
		projectID.Validate(),
		quotationID.Validate(),
		cmd.setSubmissions(submissions),
	); err != nil {
		return CreatePartsAndQuotesCommand{}, err
	}

	cmd.clientID = clientID
	cmd.projectID = projectID
	cmd.quotationID = quotationID
	return cmd, nil
}

func (c CreatePartsAndQuotesCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartsAndQuotesCommandIsNotConstructed)
}

func (c CreatePartsAndQuotesCommand) ClientID() kernel.UUID    { return c.clientID }
func (c CreatePartsAndQuotesCommand) ProjectID() kernel.UUID   { return c.projectID }
func (c CreatePartsAndQuotesCommand) QuotationID() kernel.UUID { return c.quotationID }

// Submissions returns the files in input order.
func (c CreatePartsAndQuotesCommand) Submissions() []PartSubmission {
	submissions := make([]PartSubmission, len(c.submissions))
	copy(submissions, c.submissions)
	return submissions
}

func (c *CreatePartsAndQuotesCommand) setSubmissions(submissions []PartSubmission) error {
	if len(submissions) == 0 {
		return errs.NewValueIsRequiredError("files")
	}

	var err error
	for i, s := range submissions {
		if s.File.IsZero() {
			err = errors.Join(err, errs.NewValueIsRequiredError(fmt.Sprintf("files[%d]", i)))
		}
		if len(s.PriceOptions) == 0 {
			err = errors.Join(err, fmt.Errorf("files[%d] %q: %w", i, s.File.Name(), part.ErrEmptyPriceOptions))
		}
		for j, o := range s.PriceOptions {
			if optErr := o.Validate(); optErr != nil {
				err = errors.Join(err, fmt.Errorf("files[%d].price_options[%d]: %w", i, j, optErr))
			}
		}
	}
	if err != nil {
		return err
	}

	c.submissions = make([]PartSubmission, 0, len(submissions))
	for _, s := range submissions {
		options := make([]part.PriceOption, len(s.PriceOptions))
		copy(options, s.PriceOptions)
		c.submissions = append(c.submissions, PartSubmission{File: s.File, PriceOptions: options})
	}
	return nil
}
