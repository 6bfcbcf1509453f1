package utils

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

// ValidateNewCase checks the required fields of a case creation payload.
// The returned error names the offending field.
func ValidateNewCase(c models.Case) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.Date, validation.Required),
		validation.Field(&c.InsuranceHolderID, validation.Required),
		validation.Field(&c.BaremoID, validation.Required),
		validation.Field(&c.AssignedAnalystID, validation.Required),
		validation.Field(&c.State, validation.Required),
		validation.Field(&c.Status, validation.Required, validation.By(validStatus)),
	)
}

// ValidateCaseUpdate rejects updates carrying an unknown status value.
func ValidateCaseUpdate(u models.CaseUpdate) error {
	if u.Status != nil && !workflow.ValidStatus(*u.Status) {
		return validation.Errors{"status": errors.New("must be a valid case status")}
	}
	return nil
}

func validStatus(value interface{}) error {
	s, _ := value.(string)
	if !workflow.ValidStatus(s) {
		return errors.New("must be a valid case status")
	}
	return nil
}

// ValidatePayment checks a payment payload. Amounts must be positive.
func ValidatePayment(p models.Payment) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.InvoiceID, validation.Required),
		validation.Field(&p.Amount, validation.Required, validation.Min(0.01).Error("must be greater than zero")),
		validation.Field(&p.PaymentDate, validation.Required),
	)
}

// ValidateClient checks an insurer account payload.
func ValidateClient(c models.Client) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.RIF, validation.Required),
		validation.Field(&c.Email, is.Email),
	)
}

// ValidatePatient checks a patient payload.
func ValidatePatient(p models.Patient) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CI, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Email, is.Email),
	)
}

// ValidateInsuranceHolder checks a policyholder payload.
func ValidateInsuranceHolder(h models.InsuranceHolder) error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.CI, validation.Required),
		validation.Field(&h.Name, validation.Required),
		validation.Field(&h.Email, is.Email),
	)
}

// ValidateRelationship checks a holder-patient relationship payload.
func ValidateRelationship(r models.HolderPatientRelationship) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HolderID, validation.Required),
		validation.Field(&r.PatientID, validation.Required),
		validation.Field(&r.RelationshipType, validation.Required),
	)
}

// ValidateBaremo checks a fee schedule: at least one procedure, no negative
// costs.
func ValidateBaremo(b models.Baremo) error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.ClinicName, validation.Required),
		validation.Field(&b.Procedures, validation.Required.Error("at least one procedure is required"), validation.By(nonNegativeCosts)),
	)
}

func nonNegativeCosts(value interface{}) error {
	procedures, _ := value.(models.ProcedureList)
	for _, p := range procedures {
		if p.Cost < 0 {
			return errors.New("procedure cost cannot be negative")
		}
	}
	return nil
}

// ValidateUserData validates an operator account payload.
func ValidateUserData(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(3, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Role, validation.Required, validation.In(
			models.RoleSuperusuario,
			models.RoleCoordinadorRegional,
			models.RoleAnalistaConcertado,
			models.RoleMedicoAuditor,
			models.RoleJefeFinanciero,
			models.RoleAdministrador,
		)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	return validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
