package model

import "testing"

func TestSiteString(t *testing.T) {
	s := Site{Key: "github.com", Length: 16}
	if got := s.String(); got != "github.com (length 16)" {
		t.Fatalf("unexpected String: %q", got)
	}
	s.Label = "work"
	if got := s.String(); got != "github.com (work, length 16)" {
		t.Fatalf("unexpected String with label: %q", got)
	}
}
