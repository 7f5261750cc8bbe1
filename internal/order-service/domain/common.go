// Package domain holds the value objects and workflow types of the
// place-order process.
//
// Every constrained type is a small struct with unexported state whose only
// producer is its New* constructor, so a value that exists has already been
// checked. Constructors fail with a *ValidationError carrying one message.
package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// String50 is a non-empty string of at most 50 characters.
type String50 struct {
	value string
}

func NewString50(s string) (String50, error) {
	if s == "" || utf8.RuneCountInString(s) > 50 {
		return String50{}, NewValidationError("String50 must not be null, empty or > 50 chars")
	}
	return String50{value: s}, nil
}

// NewOptionalString50 returns nil for a blank input.
func NewOptionalString50(s string) (*String50, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := NewString50(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s String50) String() string { return s.value }

var emailPattern = regexp.MustCompile(`.+@.+`)

// EmailAddress is a string containing an @ sign.
type EmailAddress struct {
	value string
}

func NewEmailAddress(s string) (EmailAddress, error) {
	if !emailPattern.MatchString(s) {
		return EmailAddress{}, NewValidationError("Invalid email format")
	}
	return EmailAddress{value: s}, nil
}

func (e EmailAddress) String() string { return e.value }

// VipStatus is the customer's tier.
type VipStatus string

const (
	VipStatusNormal VipStatus = "Normal"
	VipStatusVIP    VipStatus = "VIP"
)

// ParseVipStatus accepts exactly "Normal" or "VIP".
func ParseVipStatus(s string) (VipStatus, error) {
	switch VipStatus(s) {
	case VipStatusNormal, VipStatusVIP:
		return VipStatus(s), nil
	}
	return "", NewValidationError("Must be one of 'Normal', 'VIP'")
}

type PersonalName struct {
	FirstName String50
	LastName  String50
}

type CustomerInfo struct {
	Name         PersonalName
	EmailAddress EmailAddress
	VipStatus    VipStatus
}

// NewCustomerInfo decodes every customer field, reporting the first failure
// with its field name.
func NewCustomerInfo(in UnvalidatedCustomerInfo) (CustomerInfo, error) {
	first, err := NewString50(in.FirstName)
	if err != nil {
		return CustomerInfo{}, WithField("firstName", err)
	}
	last, err := NewString50(in.LastName)
	if err != nil {
		return CustomerInfo{}, WithField("lastName", err)
	}
	email, err := NewEmailAddress(in.EmailAddress)
	if err != nil {
		return CustomerInfo{}, WithField("emailAddress", err)
	}
	vip, err := ParseVipStatus(in.VipStatus)
	if err != nil {
		return CustomerInfo{}, WithField("vipStatus", err)
	}
	return CustomerInfo{
		Name:         PersonalName{FirstName: first, LastName: last},
		EmailAddress: email,
		VipStatus:    vip,
	}, nil
}

// HtmlString is rendered letter markup, passed through uninterpreted.
type HtmlString struct {
	value string
}

func NewHtmlString(s string) HtmlString { return HtmlString{value: s} }

func (h HtmlString) String() string { return h.value }

// PdfAttachment is an opaque named blob attached to shipping events.
type PdfAttachment struct {
	Name  string
	Bytes []byte
}
