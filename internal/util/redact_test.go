package util

import "testing"

func TestRedactPII(t *testing.T) {
	got := RedactPII("deleted aaron@mailinator.com (id=1)")
	if got != "deleted a***@mailinator.com (id=1)" {
		t.Fatalf("got %q", got)
	}
	if RedactPII("no address here") != "no address here" {
		t.Fatalf("plain text changed")
	}
}
