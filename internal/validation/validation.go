// Package validation holds the listing wizard rules. The wizard gates each
// step on its own rule set; submission re-checks the rules no single
// step enforces end to end. The API runs the submission rules again on write.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"myground/internal/models"
)

const (
	StepBasics = iota
	StepLocation
	StepDetails
	StepPricing
	StepMedia

	FinalStep = StepMedia
)

const (
	MinTitleLength       = 10
	MinDescriptionLength = 50
	MinImages            = 3
)

const (
	CodeRequired  = "REQUIRED"
	CodeInvalid   = "INVALID"
	CodeTooShort  = "TOO_SHORT"
	CodeTooFew    = "TOO_FEW"
	CodeUnsetGeo  = "COORDINATES_UNSET"
	CodeMalformed = "MALFORMED"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// FieldError is one violated rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Errors collects violated rules in the order they were checked
type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (e *Errors) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	first := e.Fields[0]
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", first.Field, first.Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", first.Field, first.Message, len(e.Fields)-1)
}

// First returns the first violated rule
func (e *Errors) First() FieldError {
	return e.Fields[0]
}

// Has reports whether field failed any rule
func (e *Errors) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (e *Errors) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, Code: code})
}

func (e *Errors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.add(field, CodeRequired, "is required")
	}
}

func (e *Errors) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateStep checks only the rules of one wizard step. It returns *Errors or nil.
func ValidateStep(step int, form models.PropertyForm) error {
	errs := &Errors{}

	switch step {
	case StepBasics:
		checkBasics(errs, form)
	case StepLocation:
		checkLocation(errs, form.Location, false)
	case StepDetails:
		checkDetails(errs, form)
		checkText(errs, form)
	case StepPricing:
		checkPricing(errs, form)
	case StepMedia:
		checkMedia(errs, form)
		checkLegal(errs, form.Legal)
	default:
		errs.add("currentStep", CodeInvalid, fmt.Sprintf("unknown step %d", step))
	}

	return errs.orNil()
}

// ValidateSubmission checks the whole form before it becomes a property.
// It returns *Errors or nil.
func ValidateSubmission(form models.PropertyForm) error {
	errs := &Errors{}

	checkText(errs, form)
	checkLocation(errs, form.Location, true)
	checkMedia(errs, form)
	checkBasics(errs, form)
	checkDetails(errs, form)
	checkPricing(errs, form)
	checkLegal(errs, form.Legal)

	return errs.orNil()
}

func checkBasics(errs *Errors, form models.PropertyForm) {
	switch {
	case form.TransactionType == "":
		errs.add("transactionType", CodeRequired, "is required")
	case !form.TransactionType.Valid():
		errs.add("transactionType", CodeInvalid, fmt.Sprintf("unknown transaction type %q", form.TransactionType))
	}

	switch {
	case form.PropertyCategory == "":
		errs.add("propertyCategory", CodeRequired, "is required")
	case !form.PropertyCategory.Valid():
		errs.add("propertyCategory", CodeInvalid, fmt.Sprintf("unknown property category %q", form.PropertyCategory))
	}

	errs.required("propertySubType", form.PropertySubType)
}

// checkLocation validates the location block. full adds the fields only the
// submission requires.
func checkLocation(errs *Errors, loc models.Location, full bool) {
	if full {
		errs.required("location.country", loc.Country)
	}
	errs.required("location.state", loc.State)
	errs.required("location.city", loc.City)
	errs.required("location.area", loc.Area)

	switch {
	case loc.Pincode == "":
		errs.add("location.pincode", CodeRequired, "is required")
	case !pincodePattern.MatchString(loc.Pincode):
		errs.add("location.pincode", CodeMalformed, "must be exactly 6 digits")
	}

	if !loc.Coordinates.IsSet() {
		errs.add("location.coordinates", CodeUnsetGeo, "pick the property location on the map")
	}
}

func checkDetails(errs *Errors, form models.PropertyForm) {
	switch form.PropertyCategory {
	case models.CategoryResidential:
		if form.Residential == nil {
			errs.add("residential", CodeRequired, "residential details are required")
			return
		}
		if form.Residential.BHK <= 0 {
			errs.add("residential.bhk", CodeRequired, "is required")
		}
		if !form.Residential.BuiltUpArea.IsPositive() {
			errs.add("residential.builtUpArea", CodeRequired, "is required")
		}
	case models.CategoryCommercial:
		if form.Commercial == nil || !form.Commercial.BuiltUpArea.IsPositive() {
			errs.add("commercial.builtUpArea", CodeRequired, "is required")
		}
	case models.CategoryLand:
		if form.Land == nil || !form.Land.PlotArea.IsPositive() {
			errs.add("land.plotArea", CodeRequired, "is required")
		}
	}
}

func checkText(errs *Errors, form models.PropertyForm) {
	if n := len([]rune(strings.TrimSpace(form.Title))); n < MinTitleLength {
		errs.add("title", CodeTooShort, fmt.Sprintf("must be at least %d characters", MinTitleLength))
	}
	if n := len([]rune(strings.TrimSpace(form.Description))); n < MinDescriptionLength {
		errs.add("description", CodeTooShort, fmt.Sprintf("must be at least %d characters", MinDescriptionLength))
	}
}

func checkPricing(errs *Errors, form models.PropertyForm) {
	p := form.Pricing
	switch form.TransactionType {
	case models.TransactionSell, models.TransactionFractional:
		if !p.ExpectedPrice.IsPositive() {
			errs.add("pricing.expectedPrice", CodeRequired, "is required")
		}
	case models.TransactionRent, models.TransactionSubLease:
		if !p.RentAmount.IsPositive() {
			errs.add("pricing.rentAmount", CodeRequired, "is required")
		}
	case models.TransactionLease:
		if !p.LeaseValue.IsPositive() {
			errs.add("pricing.leaseValue", CodeRequired, "is required")
		}
	}

	if p.SecurityDeposit.IsNegative() {
		errs.add("pricing.securityDeposit", CodeInvalid, "must not be negative")
	}
	if p.Maintenance.IsNegative() {
		errs.add("pricing.maintenance", CodeInvalid, "must not be negative")
	}
}

func checkMedia(errs *Errors, form models.PropertyForm) {
	if n := len(form.Media.Images); n < MinImages {
		errs.add("media.images", CodeTooFew, fmt.Sprintf("at least %d images are required, got %d", MinImages, n))
	}
}

func checkLegal(errs *Errors, legal models.Legal) {
	switch legal.LitigationStatus {
	case "", models.LitigationNone, models.LitigationPending, models.LitigationResolved:
	default:
		errs.add("legal.litigationStatus", CodeInvalid, fmt.Sprintf("unknown litigation status %q", legal.LitigationStatus))
	}
}
