package submission

import (
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// FieldError names the first offending field so the UI can focus it.
type FieldError struct {
	Field string
	err   *domain.AppError
}

func (e *FieldError) Error() string { return e.err.Error() }
func (e *FieldError) Unwrap() error { return e.err }

func fieldError(field string, code failure.ErrorCode, message string) *FieldError {
	return &FieldError{
		Field: field,
		err:   domain.NewError(code, message),
	}
}

// Request is the raw contact/payout input for one submission attempt.
type Request struct {
	Email          string
	Phone          string
	ContactChannel string
	PayoutType     entity.PayoutType
	AccountHolder  string
	SortCode       string
	AccountNumber  string
}

// validateRequest checks fields in fixed order; the first failure wins and
// stops the attempt before any network traffic. Bank identifiers come back
// normalized to digits, which is also the transmitted form.
func validateRequest(req Request) (entity.ContactDetails, *entity.BankDetails, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return entity.ContactDetails{}, nil, fieldError("email", errcodes.MissingEmail, "email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return entity.ContactDetails{}, nil, fieldError("email", errcodes.MissingEmail, "email address is not valid")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return entity.ContactDetails{}, nil, fieldError("phone", errcodes.MissingPhone, "phone number is required")
	}

	channel := strings.TrimSpace(req.ContactChannel)
	if channel == "" {
		return entity.ContactDetails{}, nil, fieldError("contactChannel", errcodes.MissingContactChannel, "contact channel must be selected")
	}

	contact := entity.ContactDetails{
		Email:          email,
		Phone:          phone,
		ContactChannel: channel,
	}

	if req.PayoutType != entity.PayoutBankTransfer {
		return contact, nil, nil
	}

	holder := strings.TrimSpace(req.AccountHolder)
	if holder == "" {
		return entity.ContactDetails{}, nil, fieldError("accountHolder", errcodes.MissingAccountHolder, "account holder name is required")
	}

	sortCode := digitsOnly(req.SortCode)
	if len(sortCode) != 6 {
		return entity.ContactDetails{}, nil, fieldError("sortCode", errcodes.InvalidSortCode, "sort code must be 6 digits")
	}

	accountNumber := digitsOnly(req.AccountNumber)
	if len(accountNumber) != 8 {
		return entity.ContactDetails{}, nil, fieldError("accountNumber", errcodes.InvalidAccountNumber, "account number must be 8 digits")
	}

	return contact, &entity.BankDetails{
		AccountHolder: holder,
		SortCode:      sortCode,
		AccountNumber: accountNumber,
	}, nil
}

// digitsOnly tolerates separator characters ("12-34-56", "12 34 56"); any
// non-digit rune is dropped before length checks.
func digitsOnly(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
