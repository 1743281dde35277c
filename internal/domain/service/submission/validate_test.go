package submission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/errcodes"
)

func validBankRequest() Request {
	return Request{
		Email:          "shopper@example.com",
		Phone:          "+44 7700 900123",
		ContactChannel: "email",
		PayoutType:     entity.PayoutBankTransfer,
		AccountHolder:  "A Shopper",
		SortCode:       "12-34-56",
		AccountNumber:  "12345678",
	}
}

func TestValidateRequestFirstFailureWins(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Request)
		wantField string
		wantCode  string
	}{
		{
			name:      "missing email reported before missing phone",
			mutate:    func(r *Request) { r.Email = ""; r.Phone = "" },
			wantField: "email",
			wantCode:  "MissingEmail",
		},
		{
			name:      "whitespace email is missing",
			mutate:    func(r *Request) { r.Email = "   " },
			wantField: "email",
			wantCode:  "MissingEmail",
		},
		{
			name:      "malformed email",
			mutate:    func(r *Request) { r.Email = "not-an-email" },
			wantField: "email",
			wantCode:  "MissingEmail",
		},
		{
			name:      "missing phone reported before missing channel",
			mutate:    func(r *Request) { r.Phone = ""; r.ContactChannel = "" },
			wantField: "phone",
			wantCode:  "MissingPhone",
		},
		{
			name:      "missing channel",
			mutate:    func(r *Request) { r.ContactChannel = "" },
			wantField: "contactChannel",
			wantCode:  "MissingContactChannel",
		},
		{
			name:      "missing holder reported before bad sort code",
			mutate:    func(r *Request) { r.AccountHolder = ""; r.SortCode = "12" },
			wantField: "accountHolder",
			wantCode:  "MissingAccountHolder",
		},
		{
			name:      "short sort code",
			mutate:    func(r *Request) { r.SortCode = "12-34-5" },
			wantField: "sortCode",
			wantCode:  "InvalidSortCode",
		},
		{
			name:      "short account number",
			mutate:    func(r *Request) { r.AccountNumber = "1234567" },
			wantField: "accountNumber",
			wantCode:  "InvalidAccountNumber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			request := validBankRequest()
			tt.mutate(&request)

			_, _, err := validateRequest(request)
			rq.Error(err)

			var fieldErr *FieldError
			rq.True(errors.As(err, &fieldErr))
			rq.Equal(tt.wantField, fieldErr.Field)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.EqualValues(tt.wantCode, code)
		})
	}
}

func TestValidateRequestNormalizesBankFields(t *testing.T) {
	rq := require.New(t)

	request := validBankRequest()
	request.SortCode = "12-34-56"
	request.AccountNumber = "1234 5678"

	contact, bank, err := validateRequest(request)
	rq.NoError(err)
	rq.Equal("shopper@example.com", contact.Email)
	rq.NotNil(bank)
	rq.Equal("123456", bank.SortCode)
	rq.Equal("12345678", bank.AccountNumber)
}

func TestValidateRequestStoreCreditSkipsBankChecks(t *testing.T) {
	rq := require.New(t)

	request := validBankRequest()
	request.PayoutType = entity.PayoutStoreCredit
	request.AccountHolder = ""
	request.SortCode = ""
	request.AccountNumber = ""

	contact, bank, err := validateRequest(request)
	rq.NoError(err)
	rq.Nil(bank)
	rq.Equal("email", contact.ContactChannel)
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "12-34-56", want: "123456"},
		{in: "12 34 56", want: "123456"},
		{in: "123456", want: "123456"},
		{in: "a1b2", want: "12"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, digitsOnly(tt.in))
	}
}

func TestFieldErrorUnwrapsToAppError(t *testing.T) {
	rq := require.New(t)

	err := fieldError("email", errcodes.MissingEmail, "email is required")
	rq.True(domain.HasCode(err, errcodes.MissingEmail))
	rq.Equal("email is required", err.Error())
}
