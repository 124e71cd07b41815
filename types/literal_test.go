package types

import (
	"errors"
	"testing"
)

func TestStringValueType_Accepts(t *testing.T) {
	for _, typ := range []*StringValueType{
		StringValue("Schwifty!"),
		SingleQuoted("Schwifty!"),
		DoubleQuoted("Schwifty!"),
	} {
		if !typ.Accepts("Schwifty!") {
			t.Errorf("%s.Accepts(%q) = false, want true", typ, "Schwifty!")
		}
	}

	typ := StringValue("Schwifty!")
	for _, v := range []any{"other string", nil, 42.1337, 404, map[string]string{"foo": "bar"}, false, struct{}{}} {
		if typ.Accepts(v) {
			t.Errorf("Accepts(%#v) = true, want false", v)
		}
	}
}

func TestStringValueType_CanCast(t *testing.T) {
	typ := StringValue("Schwifty!")

	for _, v := range []any{"Schwifty!", 42.1337, 404, stringableObject{}} {
		if !typ.CanCast(v) {
			t.Errorf("CanCast(%#v) = false, want true", v)
		}
	}
	for _, v := range []any{nil, map[string]string{"foo": "bar"}, false, struct{}{}} {
		if typ.CanCast(v) {
			t.Errorf("CanCast(%#v) = true, want false", v)
		}
	}
}

func TestStringValueType_Cast(t *testing.T) {
	tests := []struct {
		name  string
		typ   *StringValueType
		value any
		want  string
	}{
		{"string from float", StringValue("404.42"), 404.42, "404.42"},
		{"string from integer", StringValue("42"), 42, "42"},
		{"string from object", StringValue("foo"), stringableObject{}, "foo"},
		{"string from string", StringValue("bar"), "bar", "bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.Cast(tt.value)
			if err != nil {
				t.Fatalf("Cast(%#v) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Cast(%#v) = %#v, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestStringValueType_CastInvalidValueType(t *testing.T) {
	_, err := StringValue("Schwifty!").Cast(struct{}{})

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Cast() error = %v, want *Error", err)
	}
	if e.Code != CodeInvalidValueType {
		t.Errorf("Code = %q, want %q", e.Code, CodeInvalidValueType)
	}
	want := "Value of type `struct {}` does not match string value `Schwifty!`."
	if e.Message != want {
		t.Errorf("Message = %q, want %q", e.Message, want)
	}
	if e.Details["value_kind"] != "struct {}" {
		t.Errorf("Details[value_kind] = %v, want %q", e.Details["value_kind"], "struct {}")
	}
}

func TestStringValueType_CastAnotherStringValue(t *testing.T) {
	typeA := StringValue("Schwifty!")
	typeB := StringValue("Schwifty?")

	_, err := typeA.Cast(typeB)
	if !IsCode(err, CodeInvalidValue) {
		t.Fatalf("Cast() error = %v, want code %q", err, CodeInvalidValue)
	}
	want := "Values `Schwifty?` and `Schwifty!` do not match."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStringValueType_String(t *testing.T) {
	tests := []struct {
		typ  *StringValueType
		want string
	}{
		{StringValue("Schwifty!"), "Schwifty!"},
		{SingleQuoted("Schwifty!"), "'Schwifty!'"},
		{DoubleQuoted("Schwifty!"), `"Schwifty!"`},
		{SingleQuoted(`it's`), `'it\'s'`},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStringValueType_Matches(t *testing.T) {
	typ := StringValue("Schwifty!")

	for _, other := range []Type{StringValue("Schwifty!"), SingleQuoted("Schwifty!"), DoubleQuoted("Schwifty!"), String(), Mixed()} {
		if !typ.Matches(other) {
			t.Errorf("Matches(%s) = false, want true", other)
		}
	}
	for _, other := range []Type{StringValue("Schwifty?"), newFakeType("fake"), Integer()} {
		if typ.Matches(other) {
			t.Errorf("Matches(%s) = true, want false", other)
		}
	}
}

func TestStringValueType_MatchesUnion(t *testing.T) {
	typ := StringValue("Schwifty!")

	containing := MustUnion(newFakeType("a"), typ, newFakeType("b"))
	if !typ.Matches(containing) {
		t.Errorf("Matches(%s) = false, want true", containing)
	}

	notContaining := MustUnion(newFakeType("a"), newFakeType("b"))
	if typ.Matches(notContaining) {
		t.Errorf("Matches(%s) = true, want false", notContaining)
	}
}

func TestIntegerValueType_Accepts(t *testing.T) {
	typ := IntegerValue(42)

	for _, v := range []any{42, int8(42), int64(42), uint32(42)} {
		if !typ.Accepts(v) {
			t.Errorf("Accepts(%#v) = false, want true", v)
		}
	}
	for _, v := range []any{"42", 42.0, 43, true, nil, stringableObject{}} {
		if typ.Accepts(v) {
			t.Errorf("Accepts(%#v) = true, want false", v)
		}
	}
}

func TestIntegerValueType_CanCast(t *testing.T) {
	typ := IntegerValue(42)

	for _, v := range []any{42, "42", " 42 ", "+42", 42.0, "-7", "0"} {
		if !typ.CanCast(v) {
			t.Errorf("CanCast(%#v) = false, want true", v)
		}
	}
	for _, v := range []any{true, false, nil, "", "042", "4.2", 4.2, "0x2a", "foo", []int{42}, stringableObject{}} {
		if typ.CanCast(v) {
			t.Errorf("CanCast(%#v) = true, want false", v)
		}
	}
}

func TestIntegerValueType_Cast(t *testing.T) {
	typ := IntegerValue(42)

	for _, v := range []any{"42", 42, 42.0, uint8(42), " +42"} {
		got, err := typ.Cast(v)
		if err != nil {
			t.Fatalf("Cast(%#v) error = %v", v, err)
		}
		if got != int64(42) {
			t.Errorf("Cast(%#v) = %#v, want int64(42)", v, got)
		}
	}

	_, err := typ.Cast(true)
	if !IsCode(err, CodeInvalidValueType) {
		t.Errorf("Cast(true) error = %v, want code %q", err, CodeInvalidValueType)
	}
	if want := "Value of type `bool` does not match integer value `42`."; err.Error() != want {
		t.Errorf("Cast(true) error = %q, want %q", err, want)
	}

	_, err = typ.Cast("1337")
	if !IsCode(err, CodeInvalidValue) {
		t.Errorf("Cast(\"1337\") error = %v, want code %q", err, CodeInvalidValue)
	}
	if want := "Values `1337` and `42` do not match."; err.Error() != want {
		t.Errorf("Cast(\"1337\") error = %q, want %q", err, want)
	}
}

func TestIntegerValueType_Matches(t *testing.T) {
	typ := IntegerValue(42)

	for _, other := range []Type{IntegerValue(42), Integer(), Mixed(), ArrayKey(), IntegerKey(), MustUnion(String(), Integer())} {
		if !typ.Matches(other) {
			t.Errorf("Matches(%s) = false, want true", other)
		}
	}
	for _, other := range []Type{IntegerValue(1337), String(), Float(), FloatValue(42), StringKey(), MustUnion(String(), Float())} {
		if typ.Matches(other) {
			t.Errorf("Matches(%s) = true, want false", other)
		}
	}
}

func TestFloatValueType(t *testing.T) {
	typ := FloatValue(42.5)

	if !typ.Accepts(42.5) || !typ.Accepts(float32(42.5)) {
		t.Error("Accepts(42.5) = false, want true")
	}
	if typ.Accepts("42.5") || typ.Accepts(42) {
		t.Error("Accepts() juggled a non-float value")
	}
	if typ.CanCast(true) {
		t.Error("CanCast(true) = true, want false")
	}
	got, err := typ.Cast("42.5")
	if err != nil || got != 42.5 {
		t.Errorf("Cast(\"42.5\") = %#v, %v, want 42.5", got, err)
	}
	if _, err := typ.Cast(42); !IsCode(err, CodeInvalidValue) {
		t.Errorf("Cast(42) error = %v, want code %q", err, CodeInvalidValue)
	}
	if typ.CanCast("1e999") {
		t.Error("CanCast(\"1e999\") = true, want false")
	}
	if _, err := typ.Cast("1e999"); !IsCode(err, CodeInvalidValueType) {
		t.Errorf("Cast(\"1e999\") error = %v, want code %q", err, CodeInvalidValueType)
	}
	if got := FloatValue(42).String(); got != "42.0" {
		t.Errorf("FloatValue(42).String() = %q, want %q", got, "42.0")
	}
	if !typ.Matches(Float()) || typ.Matches(Integer()) {
		t.Error("FloatValue matches the wrong families")
	}
}

func TestBoolValueType(t *testing.T) {
	typ := BoolValue(true)

	if typ != BoolValue(true) {
		t.Error("BoolValue(true) is not a singleton")
	}
	if !typ.Accepts(true) || typ.Accepts(false) || typ.Accepts(1) {
		t.Error("Accepts() is not strict")
	}
	for _, v := range []any{true, 1, "1", "TRUE", "true"} {
		got, err := typ.Cast(v)
		if err != nil || got != true {
			t.Errorf("Cast(%#v) = %#v, %v, want true", v, got, err)
		}
	}
	if _, err := typ.Cast("0"); !IsCode(err, CodeInvalidValue) {
		t.Errorf("Cast(\"0\") error = %v, want code %q", err, CodeInvalidValue)
	}
	if _, err := typ.Cast(2); !IsCode(err, CodeInvalidValueType) {
		t.Errorf("Cast(2) error = %v, want code %q", err, CodeInvalidValueType)
	}
	if !typ.Matches(Bool()) || typ.Matches(BoolValue(false)) {
		t.Error("BoolValue matches the wrong types")
	}
}

func TestValueTypes_AcceptOwnLiteralOnly(t *testing.T) {
	tests := []struct {
		typ     Type
		literal any
		others  []any
	}{
		{IntegerValue(42), 42, []any{"42", 42.0, int64(43)}},
		{StringValue("42"), "42", []any{42, 42.0, "42 "}},
		{FloatValue(42), 42.0, []any{42, "42", 42.1}},
		{BoolValue(false), false, []any{0, "", nil}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if !tt.typ.Accepts(tt.literal) {
				t.Errorf("Accepts(%#v) = false, want true", tt.literal)
			}
			for _, v := range tt.others {
				if tt.typ.Accepts(v) {
					t.Errorf("Accepts(%#v) = true, want false", v)
				}
			}
			if !tt.typ.Matches(Mixed()) {
				t.Error("Matches(mixed) = false, want true")
			}
		})
	}
}
