package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/amortization"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/numparse"
	"go.uber.org/multierr"
)

// ErrorKind classifies a rejected field.
type ErrorKind string

// Error kinds reported by ValidateLoan.
const (
	InvalidAmount  ErrorKind = "invalid_amount"
	InvalidRate    ErrorKind = "invalid_rate"
	InvalidPayment ErrorKind = "invalid_payment"
	InvalidTerm    ErrorKind = "invalid_term"
	ParseError     ErrorKind = "parse_error"
)

// Field identifiers, matching the LoanInput JSON names.
const (
	FieldLoanSeeking      = "loanSeeking"
	FieldDownPayment      = "downPayment"
	FieldDownPaymentMode  = "downPaymentMode"
	FieldInterestRate     = "interestRate"
	FieldTermYears        = "termYears"
	FieldPrincipalPayment = "principalPayment"
	FieldExtraPayment     = "extraPayment"
	FieldMonthlyFee       = "monthlyFee"
)

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LoanInput holds the loan fields as typed by the user. Amounts accept
// currency glyphs and either ',' or '.' as the decimal separator.
type LoanInput struct {
	LoanSeeking      string `json:"loanSeeking,omitempty" yaml:"loanSeeking,omitempty"`
	DownPayment      string `json:"downPayment,omitempty" yaml:"downPayment,omitempty"`
	DownPaymentMode  string `json:"downPaymentMode,omitempty" yaml:"downPaymentMode,omitempty"`
	InterestRate     string `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	TermYears        string `json:"termYears,omitempty" yaml:"termYears,omitempty"`
	PrincipalPayment string `json:"principalPayment,omitempty" yaml:"principalPayment,omitempty"`
	ExtraPayment     string `json:"extraPayment,omitempty" yaml:"extraPayment,omitempty"`
	MonthlyFee       string `json:"monthlyFee,omitempty" yaml:"monthlyFee,omitempty"`
}

// Validated is a LoanInput that passed validation.
type Validated struct {
	Params      amortization.LoanParameters
	LoanSeeking float64
	DownPayment float64
}

// ValidateLoan parses and range-checks every field. All failures are
// returned together (see FieldErrors); a field that fails to parse is not
// range-checked.
func ValidateLoan(in LoanInput) (Validated, error) {
	var c collector

	seeking, seekingOK := c.float(FieldLoanSeeking, in.LoanSeeking)
	if seekingOK {
		switch {
		case seeking <= 0:
			seekingOK = c.fail(InvalidAmount, FieldLoanSeeking, "loan seeking amount must be greater than 0")
		case seeking > constants.MaxLoanAmount:
			seekingOK = c.fail(InvalidAmount, FieldLoanSeeking, "loan seeking amount exceeds maximum limit (100 million)")
		}
	}

	var down float64
	switch mode := strings.ToLower(strings.TrimSpace(in.DownPaymentMode)); mode {
	case "", constants.DownPaymentAuto:
		if seekingOK {
			down = mathutil.ApplyPercentage(seeking, constants.AutoDownPaymentPercent)
		}
	case constants.DownPaymentManual:
		var ok bool
		if down, ok = c.float(FieldDownPayment, in.DownPayment); ok {
			switch {
			case down < 0:
				c.fail(InvalidAmount, FieldDownPayment, "down payment cannot be negative")
			case seekingOK && down >= seeking:
				c.fail(InvalidAmount, FieldDownPayment, "down payment must be less than loan seeking amount")
			}
		}
	default:
		c.fail(ParseError, FieldDownPaymentMode, fmt.Sprintf("down payment mode must be %s or %s, got %q",
			constants.DownPaymentAuto, constants.DownPaymentManual, in.DownPaymentMode))
	}

	rate, ok := c.float(FieldInterestRate, in.InterestRate)
	if ok {
		switch {
		case rate <= 0:
			c.fail(InvalidRate, FieldInterestRate, "interest rate must be greater than 0")
		case rate > constants.MaxInterestRate:
			c.fail(InvalidRate, FieldInterestRate, "interest rate seems unusually high (max 30%)")
		}
	}

	term := constants.DefaultTermYears
	if strings.TrimSpace(in.TermYears) != "" {
		parsed, err := numparse.ParseInt(in.TermYears)
		switch {
		case err != nil:
			c.add(&FieldError{Kind: ParseError, Field: FieldTermYears, Message: err.Error(), Err: err})
		case parsed < 1 || parsed > constants.MaxTermYears:
			c.fail(InvalidTerm, FieldTermYears, fmt.Sprintf("loan term must be between 1 and %d years", constants.MaxTermYears))
		default:
			term = parsed
		}
	}

	principal := c.payment(FieldPrincipalPayment, in.PrincipalPayment, "principal payment cannot be negative")
	extra := c.payment(FieldExtraPayment, in.ExtraPayment, "extra payment cannot be negative")
	fee := c.payment(FieldMonthlyFee, in.MonthlyFee, "monthly fee cannot be negative")

	if c.errs != nil {
		return Validated{}, c.errs
	}

	return Validated{
		Params: amortization.LoanParameters{
			Principal:                 seeking - down,
			AnnualRatePercent:         rate,
			TermYears:                 term,
			ScheduledPrincipalPayment: principal,
			ExtraPayment:              extra,
			MonthlyFee:                fee,
		},
		LoanSeeking: seeking,
		DownPayment: down,
	}, nil
}

// FieldErrors flattens an error returned by ValidateLoan.
func FieldErrors(err error) []*FieldError {
	errs := multierr.Errors(err)
	// Reach a collected group through any wrapping, e.g. a scenario prefix.
	var group interface{ Errors() []error }
	if len(errs) == 1 && errors.As(err, &group) {
		errs = group.Errors()
	}

	var out []*FieldError
	for _, e := range errs {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

type collector struct {
	errs error
}

func (c *collector) add(fe *FieldError) {
	c.errs = multierr.Append(c.errs, fe)
}

// fail records a failure and returns false so callers can clear ok flags.
func (c *collector) fail(kind ErrorKind, field, msg string) bool {
	c.add(&FieldError{Kind: kind, Field: field, Message: msg})
	return false
}

func (c *collector) float(field, raw string) (float64, bool) {
	v, err := numparse.ParseFloat(raw)
	if err != nil {
		c.add(&FieldError{Kind: ParseError, Field: field, Message: err.Error(), Err: err})
		return 0, false
	}
	return v, true
}

func (c *collector) payment(field, raw, msg string) float64 {
	v, ok := c.float(field, raw)
	if ok && v < 0 {
		c.fail(InvalidPayment, field, msg)
	}
	return v
}
