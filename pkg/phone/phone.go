// Package phone validates and normalizes contact phone numbers using
// libphonenumber metadata. The default region covers numbers entered
// without a country prefix.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when no region hint is supplied.
const DefaultRegion = "SN"

// LineType classifies a parsed number.
type LineType string

const (
	TypeFixedLine         LineType = "FIXED_LINE"
	TypeMobile            LineType = "MOBILE"
	TypeFixedLineOrMobile LineType = "FIXED_LINE_OR_MOBILE"
	TypeVoip              LineType = "VOIP"
	TypeUnknown           LineType = "UNKNOWN"
)

// Result contains the outcome of phone number validation.
type Result struct {
	IsValid             bool     `json:"isValid"`
	E164Format          string   `json:"e164Format"`
	InternationalFormat string   `json:"internationalFormat"`
	NationalFormat      string   `json:"nationalFormat"`
	Region              string   `json:"region"`
	LineType            LineType `json:"lineType"`
}

// Validate parses a phone number and returns detailed information.
func Validate(phone, region string) (*Result, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	return &Result{
		IsValid:             phonenumbers.IsValidNumber(parsed),
		E164Format:          phonenumbers.Format(parsed, phonenumbers.E164),
		InternationalFormat: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		NationalFormat:      phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		Region:              phonenumbers.GetRegionCodeForNumber(parsed),
		LineType:            lineType(phonenumbers.GetNumberType(parsed)),
	}, nil
}

// Normalize converts a phone number to E.164, rejecting invalid numbers.
func Normalize(phone, region string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

func lineType(t phonenumbers.PhoneNumberType) LineType {
	switch t {
	case phonenumbers.FIXED_LINE:
		return TypeFixedLine
	case phonenumbers.MOBILE:
		return TypeMobile
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return TypeFixedLineOrMobile
	case phonenumbers.VOIP:
		return TypeVoip
	default:
		return TypeUnknown
	}
}
