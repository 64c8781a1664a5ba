package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myground/internal/models"
)

func completeForm() models.PropertyForm {
	return models.PropertyForm{
		TransactionType:  models.TransactionSell,
		PropertyCategory: models.CategoryResidential,
		PropertySubType:  "Villa",
		Title:            "Four bedroom villa near the lake",
		Description:      strings.Repeat("Spacious villa with garden and parking. ", 3),
		Location: models.Location{
			Country:     "India",
			State:       "Karnataka",
			City:        "Bengaluru",
			Area:        "Whitefield",
			Pincode:     "560066",
			Coordinates: models.NewGeoPoint(77.75, 12.97),
		},
		Residential: &models.ResidentialDetails{BHK: 4, BuiltUpArea: decimal.NewFromInt(3200)},
		Pricing:     models.Pricing{ExpectedPrice: decimal.NewFromInt(25_000_000)},
		Media:       models.Media{Images: []string{"a.jpg", "b.jpg", "c.jpg"}},
		Legal:       models.Legal{TitleClear: true, EncumbranceFree: true, LitigationStatus: models.LitigationNone},
	}
}

func fieldErrors(t *testing.T, err error) *Errors {
	t.Helper()
	var errs *Errors
	require.True(t, errors.As(err, &errs), "expected *Errors, got %v", err)
	return errs
}

func TestCompleteFormPassesEveryStep(t *testing.T) {
	form := completeForm()
	for step := StepBasics; step <= FinalStep; step++ {
		assert.NoError(t, ValidateStep(step, form), "step %d", step)
	}
	assert.NoError(t, ValidateSubmission(form))
}

func TestBasicsStep(t *testing.T) {
	errs := fieldErrors(t, ValidateStep(StepBasics, models.PropertyForm{}))
	assert.True(t, errs.Has("transactionType"))
	assert.True(t, errs.Has("propertyCategory"))
	assert.True(t, errs.Has("propertySubType"))

	form := completeForm()
	form.TransactionType = "SWAP"
	errs = fieldErrors(t, ValidateStep(StepBasics, form))
	assert.Equal(t, CodeInvalid, errs.First().Code)
}

func TestBasicsStepIgnoresLaterSteps(t *testing.T) {
	form := models.PropertyForm{
		TransactionType:  models.TransactionRent,
		PropertyCategory: models.CategoryLand,
		PropertySubType:  "Farm Land",
	}
	assert.NoError(t, ValidateStep(StepBasics, form))
}

func TestPincodeValidation(t *testing.T) {
	form := completeForm()

	form.Location.Pincode = "12345"
	errs := fieldErrors(t, ValidateStep(StepLocation, form))
	assert.True(t, errs.Has("location.pincode"))
	assert.Equal(t, CodeMalformed, errs.First().Code)

	form.Location.Pincode = "12345a"
	require.Error(t, ValidateStep(StepLocation, form))

	form.Location.Pincode = "123456"
	assert.NoError(t, ValidateStep(StepLocation, form))
}

func TestLocationRequiresCoordinates(t *testing.T) {
	form := completeForm()
	form.Location.Coordinates = models.NewGeoPoint(0, 0)

	errs := fieldErrors(t, ValidateStep(StepLocation, form))
	assert.True(t, errs.Has("location.coordinates"))

	// Only longitude set still counts as a location
	form.Location.Coordinates = models.NewGeoPoint(77.5, 0)
	assert.NoError(t, ValidateStep(StepLocation, form))
}

func TestDetailsDependOnCategory(t *testing.T) {
	form := completeForm()
	form.PropertyCategory = models.CategoryCommercial
	form.Residential = nil
	errs := fieldErrors(t, ValidateStep(StepDetails, form))
	assert.True(t, errs.Has("commercial.builtUpArea"))

	form.Commercial = &models.CommercialDetails{BuiltUpArea: decimal.NewFromInt(1200)}
	assert.NoError(t, ValidateStep(StepDetails, form))

	form.PropertyCategory = models.CategoryLand
	errs = fieldErrors(t, ValidateStep(StepDetails, form))
	assert.True(t, errs.Has("land.plotArea"))

	form.PropertyCategory = models.CategoryIsland
	assert.NoError(t, ValidateStep(StepDetails, form))
}

func TestPricingDependsOnTransactionType(t *testing.T) {
	cases := []struct {
		txn   models.TransactionType
		field string
	}{
		{models.TransactionSell, "pricing.expectedPrice"},
		{models.TransactionRent, "pricing.rentAmount"},
		{models.TransactionSubLease, "pricing.rentAmount"},
		{models.TransactionLease, "pricing.leaseValue"},
		{models.TransactionFractional, "pricing.expectedPrice"},
	}
	for _, tc := range cases {
		form := completeForm()
		form.TransactionType = tc.txn
		form.Pricing = models.Pricing{}

		errs := fieldErrors(t, ValidateStep(StepPricing, form))
		assert.Equal(t, []FieldError{{Field: tc.field, Code: CodeRequired, Message: "is required"}}, errs.Fields, tc.txn)
	}

	form := completeForm()
	form.TransactionType = models.TransactionRent
	form.Pricing = models.Pricing{RentAmount: decimal.NewFromInt(45_000)}
	assert.NoError(t, ValidateStep(StepPricing, form))
}

func TestSubmissionRequiresThreeImages(t *testing.T) {
	form := completeForm()
	form.Media.Images = form.Media.Images[:2]

	errs := fieldErrors(t, ValidateSubmission(form))
	assert.Equal(t, "media.images", errs.First().Field)
	assert.Equal(t, CodeTooFew, errs.First().Code)
}

func TestSubmissionReportsTextFirst(t *testing.T) {
	form := completeForm()
	form.Title = "Villa"
	form.Description = "Nice"
	form.Location.Country = ""

	errs := fieldErrors(t, ValidateSubmission(form))
	assert.Equal(t, "title", errs.First().Field)
	assert.True(t, errs.Has("description"))
	assert.True(t, errs.Has("location.country"))
	assert.Contains(t, errs.Error(), "and 2 more")
}

func TestUnknownStep(t *testing.T) {
	errs := fieldErrors(t, ValidateStep(9, completeForm()))
	assert.Equal(t, "currentStep", errs.First().Field)
}

func TestLitigationStatus(t *testing.T) {
	form := completeForm()
	form.Legal.LitigationStatus = "MAYBE"
	errs := fieldErrors(t, ValidateStep(StepMedia, form))
	assert.True(t, errs.Has("legal.litigationStatus"))
}
