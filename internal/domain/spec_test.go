package domain

import (
	"errors"
	"testing"
)

func makeField(t *testing.T, name string, ft FieldType) Field {
	t.Helper()
	f, err := NewField(name, ft)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func TestNewField_Validation(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		fieldType FieldType
		wantErr   bool
	}{
		{"valid text", "title", FieldText, false},
		{"valid keyword array", "tags", FieldKeywordArray, false},
		{"empty name", "", FieldKeyword, true},
		{"unknown type", "title", FieldType("uuid"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.fieldName, tt.fieldType)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewField(%q, %q) error = %v, wantErr %v", tt.fieldName, tt.fieldType, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("error should wrap ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestNewCollectionSpec_Validation(t *testing.T) {
	fields := []Field{makeField(t, "title", FieldText)}

	tests := []struct {
		name     string
		colName  string
		size     int
		distance Distance
		fields   []Field
		wantErr  bool
	}{
		{"valid", "documents", 1536, DistanceCosine, fields, false},
		{"empty distance defaults", "documents", 1536, "", fields, false},
		{"empty name", "", 1536, DistanceCosine, fields, true},
		{"bad name chars", "my docs!", 1536, DistanceCosine, fields, true},
		{"zero size", "documents", 0, DistanceCosine, fields, true},
		{"negative size", "documents", -1, DistanceCosine, fields, true},
		{"unknown distance", "documents", 1536, Distance("Hamming"), fields, true},
		{"duplicate fields", "documents", 1536, DistanceCosine, []Field{
			makeField(t, "title", FieldText),
			makeField(t, "title", FieldKeyword),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCollectionSpec(tt.colName, tt.size, tt.distance, tt.fields)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCollectionSpec error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCollectionSpec_DefaultDistance(t *testing.T) {
	s, err := NewCollectionSpec("documents", 1536, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Distance() != DistanceCosine {
		t.Errorf("expected default distance Cosine, got %q", s.Distance())
	}
}

func TestBuiltinCollections_Table(t *testing.T) {
	specs := BuiltinCollections()

	if err := ValidateUnique(specs); err != nil {
		t.Fatalf("builtin names must be unique: %v", err)
	}

	want := []struct {
		name   string
		size   int
		fields int
	}{
		{"documents", 1536, 5},
		{"chat_history", 768, 5},
		{"code_snippets", 768, 5},
		{"knowledge_base", 1024, 6},
	}

	if len(specs) != len(want) {
		t.Fatalf("expected %d builtin collections, got %d", len(want), len(specs))
	}
	for i, w := range want {
		s := specs[i]
		if s.Name() != w.name {
			t.Errorf("spec %d: expected name %q, got %q", i, w.name, s.Name())
		}
		if s.VectorSize() != w.size {
			t.Errorf("%s: expected vector size %d, got %d", w.name, w.size, s.VectorSize())
		}
		if s.Distance() != DistanceCosine {
			t.Errorf("%s: expected Cosine distance, got %q", w.name, s.Distance())
		}
		if got := len(s.Fields()); got != w.fields {
			t.Errorf("%s: expected %d payload fields, got %d", w.name, w.fields, got)
		}
	}
}

func TestBuiltinCollections_ReturnsCopy(t *testing.T) {
	a := BuiltinCollections()
	a[0] = CollectionSpec{}
	b := BuiltinCollections()
	if b[0].Name() != "documents" {
		t.Error("mutating the returned slice must not affect later calls")
	}
}

func TestValidateUnique_Duplicate(t *testing.T) {
	a, _ := NewCollectionSpec("documents", 1536, DistanceCosine, nil)
	b, _ := NewCollectionSpec("documents", 768, DistanceCosine, nil)
	if err := ValidateUnique([]CollectionSpec{a, b}); err == nil {
		t.Fatal("expected error for duplicate collection names")
	}
}
