package types

import "testing"

func TestArrayKeyType_Accepts(t *testing.T) {
	tests := []struct {
		typ     *ArrayKeyType
		accepts []any
		rejects []any
	}{
		{ArrayKey(), []any{1, "a", ""}, []any{1.0, true, nil}},
		{IntegerKey(), []any{1, int64(-3)}, []any{"1", 1.0}},
		{StringKey(), []any{"1", ""}, []any{1, nil}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			for _, v := range tt.accepts {
				if !tt.typ.Accepts(v) {
					t.Errorf("Accepts(%#v) = false, want true", v)
				}
			}
			for _, v := range tt.rejects {
				if tt.typ.Accepts(v) {
					t.Errorf("Accepts(%#v) = true, want false", v)
				}
			}
		})
	}
}

func TestArrayKeyType_Matches(t *testing.T) {
	tests := []struct {
		name  string
		typ   *ArrayKeyType
		other Type
		want  bool
	}{
		{"array-key matches itself", ArrayKey(), ArrayKey(), true},
		{"array-key matches int|string", ArrayKey(), MustUnion(Integer(), String()), true},
		{"array-key matches wider union", ArrayKey(), MustUnion(Integer(), String(), Null()), true},
		{"array-key does not match int", ArrayKey(), Integer(), false},
		{"array-key does not match int|float", ArrayKey(), MustUnion(Integer(), Float()), false},
		{"array-key matches mixed", ArrayKey(), Mixed(), true},
		{"int key matches int", IntegerKey(), Integer(), true},
		{"int key matches array-key", IntegerKey(), ArrayKey(), true},
		{"int key does not match string", IntegerKey(), String(), false},
		{"string key matches string", StringKey(), String(), true},
		{"string key does not match int key", StringKey(), IntegerKey(), false},
		{"array-key does not match int key", ArrayKey(), IntegerKey(), false},
		{"int key matches union", IntegerKey(), MustUnion(Null(), Integer()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Matches(tt.other); got != tt.want {
				t.Errorf("%s.Matches(%s) = %v, want %v", tt.typ, tt.other, got, tt.want)
			}
		})
	}
}

func TestArrayKeyType_IsMatchedBy(t *testing.T) {
	tests := []struct {
		candidate Type
		want      bool
	}{
		{Integer(), true},
		{IntegerValue(3), true},
		{StringValue("a"), true},
		{String(), true},
		{Float(), false},
		{MustUnion(IntegerValue(1), StringValue("b")), true},
		{MustUnion(Integer(), Null()), false},
	}
	for _, tt := range tests {
		if got := ArrayKey().IsMatchedBy(tt.candidate); got != tt.want {
			t.Errorf("IsMatchedBy(%s) = %v, want %v", tt.candidate, got, tt.want)
		}
	}
	if IntegerKey().IsMatchedBy(String()) {
		t.Error("int key IsMatchedBy(string) = true, want false")
	}
}

func TestArrayKeyType_Cast(t *testing.T) {
	tests := []struct {
		typ   *ArrayKeyType
		value any
		want  any
	}{
		{ArrayKey(), "42", int64(42)},
		{ArrayKey(), "foo", "foo"},
		{ArrayKey(), 4.0, int64(4)},
		{ArrayKey(), 4.5, "4.5"},
		{StringKey(), 42, "42"},
		{IntegerKey(), " 7", int64(7)},
	}
	for _, tt := range tests {
		got, err := tt.typ.Cast(tt.value)
		if err != nil {
			t.Errorf("%s.Cast(%#v) error = %v", tt.typ, tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.Cast(%#v) = %#v, want %#v", tt.typ, tt.value, got, tt.want)
		}
	}

	if _, err := IntegerKey().Cast("foo"); !IsCode(err, CodeInvalidValueType) {
		t.Errorf("Cast(\"foo\") error = %v, want code %q", err, CodeInvalidValueType)
	}
	if _, err := ArrayKey().Cast(nil); !IsCode(err, CodeInvalidValueType) {
		t.Errorf("Cast(nil) error = %v, want code %q", err, CodeInvalidValueType)
	}
}
