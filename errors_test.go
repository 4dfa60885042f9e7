package sqldata

import (
	"strings"
	"testing"
)

func TestErrorMessageCustomBands(t *testing.T) {
	cases := map[int]string{
		ErrBindInsufficientArgs:     "not enough arguments",
		ErrBindExcessArgs:           "too many arguments",
		ErrConnAlreadyOpen:          "already open",
		ErrIndexNoColumns:           "at least one column",
		ErrTransactionInSavepoint:   "inside a savepoint",
		ErrTransactionInTransaction: "inside another transaction",
	}
	for code, want := range cases {
		if got := ErrorMessage(code); !strings.Contains(got, want) {
			t.Fatalf("ErrorMessage(%d) = %q, want substring %q", code, got, want)
		}
	}
}

func TestErrorMessageEngineCodes(t *testing.T) {
	if got := ErrorMessage(0); got != "not an error" {
		t.Fatalf("code 0: %q", got)
	}
	if got := ErrorMessage(101); got != "execution finished" {
		t.Fatalf("code 101: %q", got)
	}
}

func TestErrorMessageUnknownCode(t *testing.T) {
	if got := ErrorMessage(999); !strings.Contains(got, "999") {
		t.Fatalf("got %q", got)
	}
}

func TestErrorImplementsError(t *testing.T) {
	var err error = codeError(ErrConnNotCustom)
	if !strings.Contains(err.Error(), "304") {
		t.Fatalf("got %q", err.Error())
	}
}
