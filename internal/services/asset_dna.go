package services

import (
	"errors"
	"strings"
	"time"

	"myground/internal/models"
	"myground/internal/validation"
)

// verificationCheck awards points when none of its fields failed validation
type verificationCheck struct {
	points int
	fields []string
	extra  func(models.PropertyForm) bool
}

var verificationChecks = []verificationCheck{
	{points: 10, fields: []string{"title"}},
	{points: 10, fields: []string{"description"}},
	{points: 10, fields: []string{
		"location.country", "location.state", "location.city", "location.area", "location.pincode",
	}},
	{points: 10, fields: []string{"location.coordinates"}},
	{
		points: 10,
		fields: []string{"residential", "residential.bhk", "residential.builtUpArea", "commercial.builtUpArea", "land.plotArea"},
		extra:  func(f models.PropertyForm) bool { return f.PropertyCategory.Valid() },
	},
	{
		points: 10,
		fields: []string{"pricing.expectedPrice", "pricing.rentAmount", "pricing.leaseValue"},
		extra:  func(f models.PropertyForm) bool { return f.TransactionType.Valid() },
	},
	{points: 15, fields: []string{"media.images"}},
	{points: 10, extra: func(f models.PropertyForm) bool { return f.Legal.TitleClear }},
	{points: 10, extra: func(f models.PropertyForm) bool { return f.Legal.EncumbranceFree }},
	{points: 5, extra: func(f models.PropertyForm) bool { return strings.TrimSpace(f.Legal.ReraNumber) != "" }},
}

// ComputeAssetDNA derives the verification, legal risk and trust scores of a listing
func ComputeAssetDNA(form models.PropertyForm, now time.Time) models.AssetDNA {
	var failed *validation.Errors
	if err := validation.ValidateSubmission(form); err != nil {
		errors.As(err, &failed)
	}

	score := 0
	for _, check := range verificationChecks {
		ok := true
		for _, field := range check.fields {
			if failed != nil && failed.Has(field) {
				ok = false
				break
			}
		}
		if ok && check.extra != nil {
			ok = check.extra(form)
		}
		if ok {
			score += check.points
		}
	}

	risk := legalRisk(form.Legal)
	// 0.7 verification + 0.3 legal, rounded half up in integer arithmetic
	trust := (7*score + 3*legalComponent(risk) + 5) / 10

	return models.AssetDNA{
		VerificationScore: score,
		LegalRisk:         risk,
		TrustScore:        trust,
		ComputedAt:        now.UTC(),
	}
}

func legalRisk(legal models.Legal) models.LegalRisk {
	switch {
	case legal.LitigationStatus == models.LitigationPending || !legal.TitleClear:
		return models.LegalRiskHigh
	case !legal.EncumbranceFree || legal.LitigationStatus == models.LitigationResolved:
		return models.LegalRiskMedium
	default:
		return models.LegalRiskLow
	}
}

func legalComponent(risk models.LegalRisk) int {
	switch risk {
	case models.LegalRiskLow:
		return 100
	case models.LegalRiskMedium:
		return 50
	default:
		return 0
	}
}
