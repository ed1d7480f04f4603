package enums

import "testing"

func TestParseCartOperation(t *testing.T) {
	for _, op := range []string{"add", "update", "remove", "clear"} {
		parsed, err := ParseCartOperation(op)
		if err != nil {
			t.Fatalf("parse %q: %v", op, err)
		}
		if !parsed.IsValid() || parsed.String() != op {
			t.Fatalf("unexpected operation %q", parsed)
		}
	}
	if _, err := ParseCartOperation("checkout"); err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if CartOperation("").IsValid() {
		t.Fatal("empty operation must be invalid")
	}
}

func TestParseToastVariant(t *testing.T) {
	if v, err := ParseToastVariant("destructive"); err != nil || v != ToastVariantDestructive {
		t.Fatalf("unexpected result %q %v", v, err)
	}
	if _, err := ParseToastVariant("warning"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if !ToastVariantDefault.IsValid() || ToastVariant("loud").IsValid() {
		t.Fatal("unexpected validity")
	}
}
