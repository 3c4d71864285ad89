package ir

import "testing"

func TestTypeEqualStructural(t *testing.T) {
	a := NewRecord([]Field{{Label: "x", Type: Int()}, {Label: "y", Type: Double()}})
	b := NewRecord([]Field{{Label: "x", Type: Int()}, {Label: "y", Type: Double()}})
	if !Equal(a, b, noResolve) {
		t.Fatalf("expected structurally identical records to be equal")
	}
	c := NewRecord([]Field{{Label: "x", Type: Int()}, {Label: "z", Type: Double()}})
	if Equal(a, c, noResolve) {
		t.Fatalf("expected records with different field labels to differ")
	}
}

func TestTypeEqualUnfoldsTypename(t *testing.T) {
	resolve := func(name string) (*Type, bool) {
		if name == "T" {
			return Int(), true
		}
		return nil, false
	}
	named := NewTypeName("T")
	if !Equal(named, Int(), resolve) {
		t.Fatalf("expected typename T to unfold to int")
	}
}

func TestQualifierPrefixValidity(t *testing.T) {
	ch := Channel()
	withUrgent, err := ch.Prefix(QUrgent)
	if err != nil {
		t.Fatalf("urgent should be valid on channel: %v", err)
	}
	if !withUrgent.HasQualifier(QUrgent) {
		t.Fatalf("expected qualifier to be set")
	}
	if _, err := Int().Prefix(QUrgent); err == nil {
		t.Fatalf("expected urgent on int to be rejected")
	}
}

func TestArraySizeAndGet(t *testing.T) {
	elem := Bool()
	size := &ConstantExpr{Kind: ConstInt, IntVal: 4}
	arr := NewArray(elem, size)
	if !arr.Is(KindArray) {
		t.Fatalf("expected array kind")
	}
	if arr.Size() != 1 {
		t.Fatalf("expected array Size() == 1, got %d", arr.Size())
	}
	if arr.Get(0) != elem {
		t.Fatalf("expected Get(0) to return element type")
	}
}

func TestRecordSizeAndLabels(t *testing.T) {
	rec := NewRecord([]Field{{Label: "a", Type: Int()}, {Label: "b", Type: Bool()}})
	if rec.Size() != 2 {
		t.Fatalf("expected size 2, got %d", rec.Size())
	}
	if rec.GetLabel(1) != "b" {
		t.Fatalf("expected label b, got %s", rec.GetLabel(1))
	}
}

func noResolve(string) (*Type, bool) { return nil, false }
