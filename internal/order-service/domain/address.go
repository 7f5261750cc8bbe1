package domain

import "regexp"

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ZipCode is exactly five ASCII digits.
type ZipCode struct {
	value string
}

func NewZipCode(s string) (ZipCode, error) {
	if !zipPattern.MatchString(s) {
		return ZipCode{}, NewValidationError("ZipCode must be 5 digits")
	}
	return ZipCode{value: s}, nil
}

func (z ZipCode) String() string { return z.value }

// usStateCodes holds the 50 states plus the District of Columbia.
var usStateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {},
	"DC": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {},
	"KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {}, "MI": {}, "MN": {},
	"MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {}, "NM": {},
	"NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {},
	"SC": {}, "SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {},
	"WV": {}, "WI": {}, "WY": {},
}

// UsStateCodes returns the recognised codes in no particular order.
func UsStateCodes() []string {
	codes := make([]string, 0, len(usStateCodes))
	for c := range usStateCodes {
		codes = append(codes, c)
	}
	return codes
}

// UsStateCode is one of the recognised two-letter US state codes.
type UsStateCode struct {
	value string
}

func NewUsStateCode(s string) (UsStateCode, error) {
	if _, ok := usStateCodes[s]; !ok {
		return UsStateCode{}, NewValidationError("Invalid US State Code")
	}
	return UsStateCode{value: s}, nil
}

func (c UsStateCode) String() string { return c.value }

type Address struct {
	AddressLine1 String50
	AddressLine2 *String50
	AddressLine3 *String50
	AddressLine4 *String50
	City         String50
	ZipCode      ZipCode
	State        UsStateCode
	Country      String50
}

// NewAddress decodes an address field by field, left to right.
func NewAddress(in UnvalidatedAddress) (Address, error) {
	line1, err := NewString50(in.AddressLine1)
	if err != nil {
		return Address{}, WithField("addressLine1", err)
	}
	line2, err := NewOptionalString50(in.AddressLine2)
	if err != nil {
		return Address{}, WithField("addressLine2", err)
	}
	line3, err := NewOptionalString50(in.AddressLine3)
	if err != nil {
		return Address{}, WithField("addressLine3", err)
	}
	line4, err := NewOptionalString50(in.AddressLine4)
	if err != nil {
		return Address{}, WithField("addressLine4", err)
	}
	city, err := NewString50(in.City)
	if err != nil {
		return Address{}, WithField("city", err)
	}
	zip, err := NewZipCode(in.ZipCode)
	if err != nil {
		return Address{}, WithField("zipCode", err)
	}
	state, err := NewUsStateCode(in.State)
	if err != nil {
		return Address{}, WithField("state", err)
	}
	country, err := NewString50(in.Country)
	if err != nil {
		return Address{}, WithField("country", err)
	}
	return Address{
		AddressLine1: line1,
		AddressLine2: line2,
		AddressLine3: line3,
		AddressLine4: line4,
		City:         city,
		ZipCode:      zip,
		State:        state,
		Country:      country,
	}, nil
}
