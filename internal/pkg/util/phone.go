package util

import (
	"strings"
)

// countryCode is the Algerian international dialing prefix.
const countryCode = "213"

// NormalizePhone rewrites an Algerian phone number to the +213XXXXXXXXX
// international form. Numbers already carrying a + prefix pass through
// unchanged apart from separator stripping.
//
//	"0551234567"     -> "+213551234567"
//	"00213551234567" -> "+213551234567"
//	"+213551234567"  -> "+213551234567"
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	phone = replacer.Replace(phone)

	switch {
	case strings.HasPrefix(phone, "00"+countryCode):
		return "+" + phone[2:]
	case strings.HasPrefix(phone, "0"):
		return "+" + countryCode + phone[1:]
	case strings.HasPrefix(phone, countryCode):
		return "+" + phone
	case !strings.HasPrefix(phone, "+"):
		return "+" + countryCode + phone
	}
	return phone
}
