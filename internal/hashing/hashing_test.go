package hashing

import (
	"regexp"
	"testing"
)

func TestSum_Deterministic(t *testing.T) {
	payload := []byte("id,price,date\n{A},100,2023-01-01")
	if Sum(payload) != Sum(append([]byte(nil), payload...)) {
		t.Error("identical payloads produced different digests")
	}
}

func TestSum_SingleByteDifference(t *testing.T) {
	a := []byte("{A1B2},185000,2023-04-28")
	b := append([]byte(nil), a...)
	b[len(b)-1]++

	if Sum(a) == Sum(b) {
		t.Error("payloads differing by one byte produced the same digest")
	}
}

func TestSum_Format(t *testing.T) {
	got := Sum([]byte("payload"))
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(got) {
		t.Errorf("digest %q is not lowercase hex with no separators", got)
	}
}
