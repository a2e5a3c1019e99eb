package util

import "regexp"

var reEmail = regexp.MustCompile(`([A-Za-z0-9._%+-])[A-Za-z0-9._%+-]*@([A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

// RedactPII masks the local part of email addresses so member emails do not
// end up verbatim in application logs.
func RedactPII(s string) string {
	return reEmail.ReplaceAllString(s, "$1***@$2")
}
