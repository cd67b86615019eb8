package dbutil

import (
	"errors"
	"testing"
)

func TestValidIdent(t *testing.T) {
	ok := []string{"customer_entity", "_tmp", "T1", "2fa_codes", "sales$archive"}
	bad := []string{"", "customer entity", "a;DROP", "a.b", "`x`", `"x"`, "a-b"}
	for _, s := range ok {
		if !ValidIdent(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range bad {
		if ValidIdent(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
		if _, err := SafeIdent(s); err == nil {
			t.Fatalf("SafeIdent(%q): expected error", s)
		}
	}
}

func TestQuoteLiteral(t *testing.T) {
	if got := QuoteLiteral("o'neil"); got != "'o''neil'" {
		t.Fatalf("QuoteLiteral: got %s", got)
	}
}

func TestErrWrap(t *testing.T) {
	if ErrWrap("op", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	base := errors.New("boom")
	err := ErrWrap("reset.delete", base, "entity=customer", "table=customer_entity")
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to match base")
	}
	want := "reset.delete: boom; entity=customer,table=customer_entity"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
	if got := ErrWrap("op", base).Error(); got != "op: boom" {
		t.Fatalf("got %q", got)
	}
}

func TestMissing(t *testing.T) {
	got := Missing([]string{"a", "b", "c"}, []string{"c", "a"})
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("got %v", got)
	}
	if Missing([]string{"a"}, []string{"a"}) != nil {
		t.Fatal("expected nil when nothing is missing")
	}
}
