package db

import "testing"

func validDefinition() *IndexDefinition {
	return &IndexDefinition{
		Name:     "contentd:content:idx",
		Prefixes: []string{"contentd:content:"},
		Fields: []IndexField{
			{Name: "content", Type: IndexFieldText},
			{
				Name:           "vector",
				Type:           IndexFieldVector,
				VectorAlgo:     VectorHNSW,
				VectorDim:      384,
				VectorDistance: DistanceCosine,
			},
		},
	}
}

func TestIndexDefinitionValidate(t *testing.T) {
	if err := validDefinition().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndexDefinitionValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*IndexDefinition)
	}{
		{"empty name", func(d *IndexDefinition) { d.Name = "" }},
		{"invalid name", func(d *IndexDefinition) { d.Name = "bad name!" }},
		{"no fields", func(d *IndexDefinition) { d.Fields = nil }},
		{"blank field name", func(d *IndexDefinition) { d.Fields[0].Name = "" }},
		{"duplicate field", func(d *IndexDefinition) { d.Fields[1].Name = "content" }},
		{"vector without dim", func(d *IndexDefinition) { d.Fields[1].VectorDim = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := validDefinition()
			tc.mutate(def)
			if err := def.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"idx", "contentd:content:idx", "a_b-c:1"}
	for _, s := range valid {
		if !IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "has space", "semi;colon", "star*"}
	for _, s := range invalid {
		if IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = true, want false", s)
		}
	}
}
